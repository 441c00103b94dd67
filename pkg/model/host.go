package model

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/byxorna/tinyhouse/pkg/gateway"
	"github.com/byxorna/tinyhouse/pkg/media"
	"github.com/byxorna/tinyhouse/pkg/route"
	"github.com/byxorna/tinyhouse/pkg/text"
	v1 "github.com/byxorna/tinyhouse/pkg/types/v1"
	"github.com/byxorna/tinyhouse/pkg/ui"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	units "github.com/docker/go-units"
	"github.com/mitchellh/go-homedir"
)

const (
	hostValidationMessage  = "Please complete all required form fields!"
	hostImageTypeMessage   = "You're only able to upload valid JPG or PNG files!"
	hostImageSizeMessage   = "You're only able to upload valid image files of under 1MB in size!"
	hostImageReadMessage   = "We weren't able to read that image. Please check the path and try again."
	hostSubmitErrorMessage = "Sorry! We weren't able to create your listing. Please try again later."
	hostSuccessNotice      = "You've successfully created your listing!"
)

// form fields in focus order
const (
	hostFieldType = iota
	hostFieldGuests
	hostFieldTitle
	hostFieldDescription
	hostFieldAddress
	hostFieldCity
	hostFieldState
	hostFieldPostalCode
	hostFieldImage
	hostFieldPrice
	hostFieldSubmit
)

type hostField struct {
	name        string // HostForm field name
	label       string
	placeholder string
	hint        string
	limit       int
}

var hostFields = []hostField{
	hostFieldType:        {name: "Type", label: "Home Type"},
	hostFieldGuests:      {name: "NumOfGuests", label: "Max # of Guests", placeholder: "4", limit: 2},
	hostFieldTitle:       {name: "Title", label: "Title", placeholder: "The iconic and luxurious Bel-Air mansion", hint: "Max character count of 45", limit: v1.TitleCharacterLimit},
	hostFieldDescription: {name: "Description", label: "Description of listing", placeholder: "Modern, clean, and iconic home of the Fresh Prince.", hint: "Max character count of 400", limit: v1.DescriptionCharacterLimit},
	hostFieldAddress:     {name: "Address", label: "Address", placeholder: "251 North Bristol Avenue"},
	hostFieldCity:        {name: "City", label: "City/Town", placeholder: "Los Angeles"},
	hostFieldState:       {name: "State", label: "State/Province", placeholder: "California"},
	hostFieldPostalCode:  {name: "PostalCode", label: "Zip/Postal Code", placeholder: "90210"},
	hostFieldImage:       {name: "Image", label: "Image", placeholder: "~/Pictures/listing.png", hint: "Images have to be under 1MB in size and of type JPG or PNG. Press enter to upload."},
	hostFieldPrice:       {name: "Price", label: "Price", placeholder: "120", hint: "All prices in $USD/day", limit: 10},
}

// hostModel collects and submits a new listing
type hostModel struct {
	common *commonModel

	focus      int
	listType   v1.ListingType
	inputs     []textinput.Model
	invalid    map[string]bool
	message    string
	submitting bool

	imageGen     int
	imageLoading bool
	image        string
	imageName    string
	imageSize    int64
	imageError   string
}

func newHostModel(common *commonModel) *hostModel {
	inputs := make([]textinput.Model, len(hostFields))
	for i, f := range hostFields {
		if i == hostFieldType {
			continue
		}
		ti := textinput.NewModel()
		ti.Prompt = "> "
		ti.Placeholder = f.placeholder
		if f.limit > 0 {
			ti.CharLimit = f.limit
		}
		inputs[i] = ti
	}
	return &hostModel{
		common:  common,
		inputs:  inputs,
		invalid: map[string]bool{},
	}
}

func (m *hostModel) init() tea.Cmd { return nil }

// gated reports whether the viewer may not host
func (m *hostModel) gated() bool {
	v := m.common.viewer()
	return !v.LoggedIn() || !v.HasWallet
}

func (m *hostModel) capturing() bool {
	return !m.gated() && m.focus > hostFieldType && m.focus < hostFieldSubmit
}

func (m *hostModel) setFocus(i int) {
	if i < 0 {
		i = hostFieldSubmit
	}
	if i > hostFieldSubmit {
		i = 0
	}
	if m.focus > hostFieldType && m.focus < hostFieldSubmit {
		m.inputs[m.focus].Blur()
	}
	m.focus = i
	if m.focus > hostFieldType && m.focus < hostFieldSubmit {
		m.inputs[m.focus].Focus()
	}
}

func (m *hostModel) value(i int) string {
	return strings.TrimSpace(m.inputs[i].Value())
}

func (m *hostModel) form() v1.HostForm {
	return v1.HostForm{
		Type:        m.listType,
		NumOfGuests: m.value(hostFieldGuests),
		Title:       m.value(hostFieldTitle),
		Description: m.value(hostFieldDescription),
		Address:     m.value(hostFieldAddress),
		City:        m.value(hostFieldCity),
		State:       m.value(hostFieldState),
		PostalCode:  m.value(hostFieldPostalCode),
		Image:       m.image,
		Price:       m.value(hostFieldPrice),
	}
}

// uploadImage checks and encodes the image at the path in the image field
func (m *hostModel) uploadImage() tea.Cmd {
	path := m.value(hostFieldImage)
	if path == "" {
		return nil
	}
	m.imageGen++
	m.imageLoading = true
	m.imageError = ""

	gen := m.imageGen
	return func() tea.Msg {
		full := expandPath(path)
		data, err := media.EncodeImage(full)
		if err != nil {
			return imageEncodedMsg{gen: gen, path: path, err: err}
		}
		var size int64
		if info, err := os.Stat(full); err == nil {
			size = info.Size()
		}
		return imageEncodedMsg{gen: gen, path: path, data: data, size: size}
	}
}

// submit validates the form and sends it
func (m *hostModel) submit() tea.Cmd {
	if m.submitting || m.imageLoading {
		return nil
	}
	m.invalid = map[string]bool{}

	input, err := m.form().Input()
	var verr *v1.ValidationError
	if errors.As(err, &verr) {
		for _, f := range verr.Fields {
			m.invalid[f] = true
		}
		m.message = hostValidationMessage
		return nil
	}
	if err != nil {
		m.message = hostValidationMessage
		return nil
	}

	m.message = ""
	m.submitting = true
	ctx, gw := m.common.requestContext(), m.common.gateway
	return func() tea.Msg {
		id, err := gateway.HostListing(ctx, gw, *input)
		return listingHostedMsg{id: id, err: err}
	}
}

func (m *hostModel) update(msg tea.Msg) (page, tea.Cmd) {
	if m.gated() {
		return m, nil
	}

	switch msg := msg.(type) {
	case imageEncodedMsg:
		if msg.gen != m.imageGen {
			return m, nil
		}
		m.imageLoading = false
		switch {
		case errors.Is(msg.err, media.ErrUnsupportedType):
			m.imageError = hostImageTypeMessage
		case errors.Is(msg.err, media.ErrTooLarge):
			m.imageError = hostImageSizeMessage
		case msg.err != nil:
			m.common.log.WithError(msg.err).Warn("unable to encode image")
			m.imageError = hostImageReadMessage
		default:
			m.image = msg.data
			m.imageName = filepath.Base(msg.path)
			m.imageSize = msg.size
		}
		return m, nil

	case listingHostedMsg:
		m.submitting = false
		if msg.err != nil {
			m.common.log.WithError(msg.err).Warn("unable to host listing")
			m.message = hostSubmitErrorMessage
			return m, nil
		}
		return m, navigateWithNotice(route.Listing(msg.id), hostSuccessNotice)

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch {
		case key.Matches(msg, pageKeys.Tab):
			m.setFocus(m.focus + 1)
			return m, nil

		case key.Matches(msg, pageKeys.Back):
			m.setFocus(m.focus - 1)
			return m, nil

		case m.focus == hostFieldType && key.Matches(msg, pageKeys.Toggle):
			if m.listType == v1.Apartment {
				m.listType = v1.House
			} else {
				m.listType = v1.Apartment
			}
			return m, nil

		case msg.Type == tea.KeyEnter:
			switch m.focus {
			case hostFieldImage:
				return m, m.uploadImage()
			case hostFieldSubmit:
				return m, m.submit()
			default:
				m.setFocus(m.focus + 1)
				return m, nil
			}
		}
	}

	if m.focus > hostFieldType && m.focus < hostFieldSubmit {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *hostModel) label(i int) string {
	f := hostFields[i]
	switch {
	case m.invalid[f.name]:
		return ui.RedFg(f.label)
	case i == m.focus:
		return ui.FormLabelFocused(f.label)
	}
	return ui.FormLabelUnfocused(f.label)
}

func (m *hostModel) view() string {
	if m.gated() {
		return titleStyle.Render("You'll have to be signed in and connected with Stripe to host a listing!") + "\n" +
			subtitleStyle.Render("We only allow users who've signed in to our application and have connected with Stripe to host\nnew listings. You can sign in at the login page and connect with Stripe from your profile.")
	}

	if m.submitting {
		return m.common.spin() + " We're creating your listing now..."
	}

	b := strings.Builder{}
	if m.message != "" {
		b.WriteString(errorBanner(m.message) + "\n\n")
	}
	b.WriteString(titleStyle.Render("Hi! Let's get started listing your place."))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("In this form, we'll collect some basic and additional information about your listing."))
	b.WriteString("\n\n")

	for i, f := range hostFields {
		b.WriteString(m.label(i))
		b.WriteString("\n")
		switch i {
		case hostFieldType:
			b.WriteString(m.typeView())
		case hostFieldImage:
			b.WriteString(m.inputs[i].View())
			b.WriteString("\n")
			b.WriteString(m.imageView())
		default:
			b.WriteString(m.inputs[i].View())
		}
		if f.hint != "" {
			b.WriteString("\n" + ui.FormHintFg(f.hint))
		}
		b.WriteString("\n\n")
	}
	b.WriteString(button("Submit", m.focus == hostFieldSubmit))
	return b.String()
}

func (m *hostModel) typeView() string {
	choices := []v1.ListingType{v1.Apartment, v1.House}
	out := make([]string, len(choices))
	for i, c := range choices {
		label := text.ListingIcon(c) + " " + strings.Title(strings.ToLower(string(c)))
		if c == m.listType {
			out[i] = ui.FuchsiaFg("(•) " + label)
		} else {
			out[i] = ui.BrightGrayFg("( ) " + label)
		}
	}
	return strings.Join(out, "  ")
}

// imageView shows a spinner in place of the preview while encoding
func (m *hostModel) imageView() string {
	switch {
	case m.imageLoading:
		return m.common.spin() + " uploading"
	case m.imageError != "" && m.image != "":
		return ui.RedFg(text.EmojiWarning+" "+m.imageError) + ui.FormHintFg(" keeping "+m.imageName)
	case m.imageError != "":
		return ui.RedFg(text.EmojiWarning + " " + m.imageError)
	case m.image != "":
		return ui.GreenFg(text.EmojiCheck+" "+m.imageName) + ui.FormHintFg(" "+units.BytesSize(float64(m.imageSize)))
	}
	return ui.FormHintFg("no image uploaded")
}

func expandPath(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}
