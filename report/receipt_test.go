package report

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drapebook/drapebook/internal/booking"
)

var receiptOrder = booking.Order{
	ID:                "o1",
	CustomerName:      "Asha <VIP>",
	Phone:             "9845012345",
	ServiceType:       booking.ServiceBoth,
	SareeCount:        3,
	EventDate:         "2024-03-15",
	BaseAmount:        1800,
	AdditionalCharges: []booking.Charge{{Name: "Travel", Amount: 200}},
	TotalAmount:       2000,
	Payments:          []booking.Payment{{Amount: 500, Date: "2024-03-01", Mode: booking.PaymentModeAdvance}},
	AmountPaid:        500,
}

func TestReceiptHTML(t *testing.T) {
	html, err := ReceiptHTML(booking.BusinessProfile{BusinessName: "Pleats"}, receiptOrder, time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	out := string(html)
	assert.Contains(t, out, "<h1>Pleats</h1>")
	assert.Contains(t, out, "Asha &lt;VIP&gt;")
	assert.Contains(t, out, "Travel")
	assert.Contains(t, out, "2000.00")
	assert.Contains(t, out, "1500.00")
	assert.Contains(t, out, "2024-03-02 10:00")
}

func TestReceiptPDFThroughGotenberg(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/forms/chromium/convert/html" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		file, _, err := r.FormFile("files")
		if err != nil {
			t.Errorf("missing form file: %v", err)
			return
		}
		body, _ := io.ReadAll(file)
		if !strings.Contains(string(body), "Receipt o1") {
			t.Errorf("unexpected html payload")
		}
		_, _ = w.Write([]byte("PDF"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	assert.True(t, client.Enabled())
	pdf, err := ReceiptPDF(context.Background(), client, booking.BusinessProfile{}, receiptOrder, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "PDF", string(pdf))
}

func TestRenderHTMLFailureStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.RenderHTML(context.Background(), []byte("<html></html>"))
	require.ErrorContains(t, err, "503")
	require.Error(t, client.Ping(context.Background()))
	assert.False(t, NewClient("", 0).Enabled())
}
