package notify

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/drapebook/drapebook/internal/booking"
)

var testOrder = booking.Order{
	ID:           "o1",
	CustomerName: "Asha",
	Phone:        "098450 12345",
	ServiceType:  booking.ServiceBoth,
	Location:     booking.LocationOnsite,
	SareeCount:   3,
	EventDate:    "2024-03-15",
	TotalAmount:  2000,
	AmountPaid:   500,
	Payments:     []booking.Payment{{ID: "p1", Amount: 500, Date: "2024-03-01", Mode: booking.PaymentModeUPI}},
}

func TestComposerMessages(t *testing.T) {
	c := NewComposer(booking.BusinessProfile{BusinessName: "Pleats & Co", Phone: "9000011111"}, booking.DefaultPhones, "")

	text := c.OrderConfirmation(testOrder)
	assert.Contains(t, text, "Hello Asha")
	assert.Contains(t, text, "both x 3 saree(s)")
	assert.Contains(t, text, "Rs. 2,000.00")
	assert.Contains(t, text, "Balance: Rs. 1,500.00")
	assert.True(t, strings.HasSuffix(text, "- Pleats & Co (9000011111)"))

	receipt := c.PaymentReceipt(testOrder, testOrder.Payments[0])
	assert.Contains(t, receipt, "Rs. 500.00 by upi on 2024-03-01")

	ack := c.EnquiryAcknowledgement(booking.Enquiry{CustomerName: "Meera", ServiceType: booking.ServiceDrape, SareeCount: 1})
	assert.Contains(t, ack, "Hello Meera")
	assert.NotContains(t, ack, " on ")
}

func TestShareLink(t *testing.T) {
	c := NewComposer(booking.BusinessProfile{}, booking.DefaultPhones, "en-IN")

	link, err := c.ShareLink("+91 98450-12345", "Hi & welcome")
	require.NoError(t, err)
	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", u.Host)
	assert.Equal(t, "/919845012345", u.Path)
	assert.Equal(t, "Hi & welcome", u.Query().Get("text"))

	_, err = c.ShareLink("none", "x")
	require.ErrorIs(t, err, booking.ErrValidation)
}

type fakeMessageAPI struct {
	params *twilioApi.CreateMessageParams
	err    error
}

func (f *fakeMessageAPI) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	sid := "SM123"
	return &twilioApi.ApiV2010Message{Sid: &sid}, nil
}

func TestTwilioSender(t *testing.T) {
	api := &fakeMessageAPI{}
	s := newTwilioSender(api, TwilioConfig{FromNumber: "+15550001", WhatsAppNumber: "+15550002"}, nil)

	ref, err := s.Send(context.Background(), Message{To: "+919845012345", Body: "hi", Channel: ChannelWhatsApp})
	require.NoError(t, err)
	assert.Equal(t, "SM123", ref)
	assert.Equal(t, "whatsapp:+919845012345", *api.params.To)
	assert.Equal(t, "whatsapp:+15550002", *api.params.From)

	_, err = s.Send(context.Background(), Message{To: "+919845012345", Body: "hi", Channel: ChannelSMS})
	require.NoError(t, err)
	assert.Equal(t, "+15550001", *api.params.From)

	api.err = errors.New("rate limited")
	_, err = s.Send(context.Background(), Message{To: "+1", Body: "hi"})
	require.ErrorContains(t, err, "rate limited")

	_, err = s.Send(context.Background(), Message{To: "", Body: "hi"})
	require.Error(t, err)
}

type stubBookings struct{}

func (stubBookings) GetOrder(_ context.Context, id string) (*booking.Order, error) {
	if id != testOrder.ID {
		return nil, booking.ErrNotFound
	}
	o := testOrder
	return &o, nil
}

func (stubBookings) GetEnquiry(context.Context, string) (*booking.Enquiry, error) {
	return &booking.Enquiry{CustomerName: "Meera", Phone: "9900011122", ServiceType: booking.ServiceDrape, SareeCount: 2}, nil
}

func (stubBookings) GetSettings(context.Context) (booking.Settings, error) {
	return booking.DefaultSettings(), nil
}

func (stubBookings) Phones() booking.PhoneCanonicalizer { return booking.DefaultPhones }

type recordingSender struct{ sent []Message }

func (r *recordingSender) Send(_ context.Context, msg Message) (string, error) {
	r.sent = append(r.sent, msg)
	return "ref", nil
}

func TestServiceShareAndDeliver(t *testing.T) {
	sender := &recordingSender{}
	svc := NewService(stubBookings{}, sender, "", nil)
	ctx := context.Background()

	share, err := svc.OrderShare(ctx, "o1", "")
	require.NoError(t, err)
	assert.Equal(t, KindOrderConfirmation, share.Kind)
	assert.True(t, strings.HasPrefix(share.Link, "https://wa.me/919845012345?text="))

	receipt, err := svc.OrderShare(ctx, "o1", "p1")
	require.NoError(t, err)
	assert.Equal(t, KindPaymentReceipt, receipt.Kind)

	_, err = svc.OrderShare(ctx, "o1", "missing")
	require.ErrorIs(t, err, booking.ErrNotFound)

	ack, err := svc.EnquiryShare(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, KindEnquiryAck, ack.Kind)

	ref, err := svc.Deliver(ctx, share, "")
	require.NoError(t, err)
	assert.Equal(t, "ref", ref)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "+919845012345", sender.sent[0].To)
	assert.Equal(t, ChannelWhatsApp, sender.sent[0].Channel)
}
