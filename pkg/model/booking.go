package model

import (
	"errors"
	"strings"
	"time"

	"github.com/byxorna/tinyhouse/pkg/gateway"
	"github.com/byxorna/tinyhouse/pkg/payment"
	"github.com/byxorna/tinyhouse/pkg/text"
	v1 "github.com/byxorna/tinyhouse/pkg/types/v1"
	"github.com/byxorna/tinyhouse/pkg/ui"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	bookingDatesMessage       = "Please enter your check in and check out dates as YYYY-MM-DD."
	bookingDateOrderMessage   = "Check out date can't be prior to check in date!"
	bookingNotReadyMessage    = "Sorry! We weren't able to connect with Stripe."
	bookingTokenizeMessage    = "Sorry! We weren't able to book the listing. Please try again later."
	bookingSubmitErrorMessage = "Sorry! We weren't able to successfully book the listing. Please try again later!"
	bookingSuccessNotice      = "You've successfully booked the listing! Booking history can always be found in your User Page."
)

const (
	bookingFieldCheckIn = iota
	bookingFieldCheckOut
	bookingFieldCardNumber
	bookingFieldExpMonth
	bookingFieldExpYear
	bookingFieldCVC
	bookingFieldSubmit
)

const bookingLabelWidth = 12

var bookingFieldLabels = []string{
	bookingFieldCheckIn:    "Check In",
	bookingFieldCheckOut:   "Check Out",
	bookingFieldCardNumber: "Card Number",
	bookingFieldExpMonth:   "Exp. Month",
	bookingFieldExpYear:    "Exp. Year",
	bookingFieldCVC:        "CVC",
}

// bookingModel is the booking draft for a listing plus the card fields
// that are handed to the payment widget
type bookingModel struct {
	common *commonModel

	active     bool
	focus      int
	inputs     []textinput.Model
	submitting bool
	message    string
}

func newBookingModel(common *commonModel) bookingModel {
	placeholders := []string{"YYYY-MM-DD", "YYYY-MM-DD", "4242 4242 4242 4242", "MM", "YY", "123"}
	limits := []int{10, 10, 23, 2, 4, 4}

	inputs := make([]textinput.Model, len(bookingFieldLabels))
	for i := range inputs {
		ti := textinput.NewModel()
		ti.Prompt = "> "
		ti.Placeholder = placeholders[i]
		ti.CharLimit = limits[i]
		inputs[i] = ti
	}
	inputs[bookingFieldCVC].EchoMode = textinput.EchoPassword
	inputs[bookingFieldCVC].EchoCharacter = '•'

	return bookingModel{common: common, inputs: inputs}
}

func (b *bookingModel) open() {
	b.active = true
	b.message = ""
	b.setFocus(bookingFieldCheckIn)
}

func (b *bookingModel) close() {
	b.active = false
	b.setFocus(bookingFieldSubmit)
}

// clear drops the draft and the card details
func (b *bookingModel) clear() {
	for i := range b.inputs {
		b.inputs[i].Reset()
	}
	b.message = ""
	b.close()
}

func (b *bookingModel) capturing() bool {
	return b.active && b.focus < bookingFieldSubmit
}

func (b *bookingModel) setFocus(i int) {
	if i < 0 {
		i = bookingFieldSubmit
	}
	if i > bookingFieldSubmit {
		i = 0
	}
	if b.focus < bookingFieldSubmit {
		b.inputs[b.focus].Blur()
	}
	b.focus = i
	if b.focus < bookingFieldSubmit {
		b.inputs[b.focus].Focus()
	}
}

// dates parses the draft. ok is false unless both dates are present, valid
// and in order.
func (b *bookingModel) dates() (checkIn, checkOut time.Time, ok bool) {
	checkIn, err := v1.ParseDate(strings.TrimSpace(b.inputs[bookingFieldCheckIn].Value()))
	if err != nil {
		return
	}
	checkOut, err = v1.ParseDate(strings.TrimSpace(b.inputs[bookingFieldCheckOut].Value()))
	if err != nil {
		return
	}
	return checkIn, checkOut, !checkOut.Before(checkIn)
}

// submit tokenizes the card and books the listing. Nothing is sent unless
// the dates are valid and the payment widget is ready.
func (b *bookingModel) submit(listingID string) tea.Cmd {
	if b.submitting {
		return nil
	}

	checkIn, checkOut, ok := b.dates()
	if !ok {
		if !checkIn.IsZero() && !checkOut.IsZero() {
			b.message = bookingDateOrderMessage
		} else {
			b.message = bookingDatesMessage
		}
		return nil
	}

	widget := b.common.payment
	if widget == nil || !widget.Ready() {
		b.message = bookingNotReadyMessage
		return nil
	}

	b.message = ""
	b.submitting = true

	card := payment.Card{
		Number:   strings.TrimSpace(b.inputs[bookingFieldCardNumber].Value()),
		ExpMonth: strings.TrimSpace(b.inputs[bookingFieldExpMonth].Value()),
		ExpYear:  strings.TrimSpace(b.inputs[bookingFieldExpYear].Value()),
		CVC:      strings.TrimSpace(b.inputs[bookingFieldCVC].Value()),
	}
	input := v1.CreateBookingInput{
		ID:       listingID,
		CheckIn:  checkIn.Format(v1.DateFormat),
		CheckOut: checkOut.Format(v1.DateFormat),
	}
	ctx, gw := b.common.requestContext(), b.common.gateway
	return func() tea.Msg {
		token, err := widget.Tokenize(ctx, card)
		if err != nil {
			return bookingCreatedMsg{err: err}
		}
		if token == "" {
			return bookingCreatedMsg{err: &payment.ServiceError{Err: payment.ErrNoToken}}
		}
		input.Source = token
		id, err := gateway.CreateBooking(ctx, gw, input)
		return bookingCreatedMsg{id: id, err: err}
	}
}

// failed records why a booking did not go through. The draft is kept.
func (b *bookingModel) failed(err error) {
	b.submitting = false

	var serr *payment.ServiceError
	switch {
	case errors.Is(err, payment.ErrNotReady):
		b.message = bookingNotReadyMessage
	case errors.As(err, &serr) && serr.Message != "":
		b.message = serr.Message
	case errors.As(err, &serr):
		b.message = bookingTokenizeMessage
	default:
		b.message = bookingSubmitErrorMessage
	}
}

func (b bookingModel) update(msg tea.KeyMsg) (bookingModel, tea.Cmd) {
	switch {
	case key.Matches(msg, pageKeys.Tab):
		b.setFocus(b.focus + 1)
		return b, nil
	case key.Matches(msg, pageKeys.Back):
		b.setFocus(b.focus - 1)
		return b, nil
	case msg.Type == tea.KeyEnter:
		if b.focus < bookingFieldSubmit {
			b.setFocus(b.focus + 1)
		}
		return b, nil
	}

	if b.focus < bookingFieldSubmit {
		var cmd tea.Cmd
		b.inputs[b.focus], cmd = b.inputs[b.focus].Update(msg)
		return b, cmd
	}
	return b, nil
}

func (b bookingModel) view(price int) string {
	s := strings.Builder{}
	s.WriteString(titleStyle.Render(text.EmojiKey + " Book your trip"))
	s.WriteString("\n")
	if b.message != "" {
		s.WriteString(errorBanner(b.message) + "\n\n")
	}

	for i, label := range bookingFieldLabels {
		label = text.PadRight(label, bookingLabelWidth)
		if i == b.focus {
			s.WriteString(ui.FormLabelFocused(label))
		} else {
			s.WriteString(ui.FormLabelUnfocused(label))
		}
		s.WriteString(" " + b.inputs[i].View() + "\n")
		if i == bookingFieldCheckOut {
			s.WriteString("\n" + b.summary(price) + "\n\n")
		}
	}

	if b.submitting {
		s.WriteString("\n" + b.common.spin() + " booking")
	} else {
		s.WriteString(button("Book", b.focus == bookingFieldSubmit))
	}
	return dialogBoxStyle.Render(s.String())
}

// summary shows the charge for the draft dates
func (b bookingModel) summary(price int) string {
	checkIn, checkOut, ok := b.dates()
	if !ok {
		return ui.FormHintFg(text.EmojiCalendar + " pick your dates to see the total")
	}
	nights := v1.Nights(checkIn, checkOut)
	total := v1.BookingTotal(price, checkIn, checkOut)
	out := ui.FormHintFg(text.Price(price, false)+" * "+text.Nights(nights)+" = ") + ui.CardPriceFg(text.Price(total, false)) +
		"\n" + ui.FormHintFg("from "+checkIn.Format("January 2 2006")+" to "+checkOut.Format("January 2 2006")+" inclusive")
	if holidays := text.Holidays(checkIn, checkOut); len(holidays) > 0 {
		out += "\n" + ui.FormHintFg(text.EmojiStar+" includes "+strings.Join(holidays, ", "))
	}
	return out
}
