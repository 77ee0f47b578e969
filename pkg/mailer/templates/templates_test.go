package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWelcome(t *testing.T) {
	subject, text, html, err := Render(Welcome, EmailData{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	assert.Equal(t, "Welcome to Rentify, Ada!", subject)
	assert.Contains(t, text, "ada@example.com")
	assert.Contains(t, html, "<strong>ada@example.com</strong>")
}

func TestRenderBookingConfirmedFromMap(t *testing.T) {
	data := ToMap(EmailData{BookingID: "b1", ListingTitle: "Loft <3", Nights: 3, TotalPrice: 300})

	subject, text, html, err := Render(BookingConfirmed, FromMap(data))
	require.NoError(t, err)

	assert.Equal(t, "Your stay at Loft <3 is booked", subject)
	assert.Contains(t, text, "Total: 300.00")
	assert.Contains(t, html, "Loft &lt;3", "html output is escaped")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nope", EmailData{})
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}
