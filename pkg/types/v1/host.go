package v1

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator"
)

const (
	TitleCharacterLimit       = 45
	DescriptionCharacterLimit = 400
)

// ValidationError aggregates every field that failed local validation
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid fields: %s", strings.Join(e.Fields, ", "))
}

// HostForm is the raw content of the host listing form
type HostForm struct {
	Type        ListingType `validate:"required,oneof=APARTMENT HOUSE"`
	NumOfGuests string      `validate:"required,numeric"`
	Title       string      `validate:"required,max=45"`
	Description string      `validate:"required,max=400"`
	Address     string      `validate:"required"`
	City        string      `validate:"required"`
	State       string      `validate:"required"`
	PostalCode  string      `validate:"required"`
	Image       string      `validate:"required"`
	Price       string      `validate:"required,numeric"`
}

// HostListingInput is what is submitted to create a listing. The address
// components of the form are folded into Address.
type HostListingInput struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Type        ListingType `json:"type"`
	Address     string      `json:"address"`
	Price       int         `json:"price"`
	NumOfGuests int         `json:"numOfGuests"`
}

func (f HostForm) Validate() error {
	validate := validator.New()
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	ve := ValidationError{}
	for _, fe := range verrs {
		ve.Fields = append(ve.Fields, fe.Field())
	}
	return &ve
}

// Input validates the form and packages it for submission
func (f HostForm) Input() (*HostListingInput, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	ve := ValidationError{}
	guests, err := strconv.Atoi(f.NumOfGuests)
	if err != nil || guests < 1 {
		ve.Fields = append(ve.Fields, "NumOfGuests")
	}
	price, err := strconv.ParseFloat(f.Price, 64)
	if err != nil || price < 0 {
		ve.Fields = append(ve.Fields, "Price")
	}
	if len(ve.Fields) > 0 {
		return nil, &ve
	}

	return &HostListingInput{
		Title:       f.Title,
		Description: f.Description,
		Image:       f.Image,
		Type:        f.Type,
		Address:     fmt.Sprintf("%s, %s, %s, %s", f.Address, f.City, f.State, f.PostalCode),
		Price:       int(math.Round(price * 100)),
		NumOfGuests: guests,
	}, nil
}
