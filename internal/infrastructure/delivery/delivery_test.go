package delivery_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cobranza-api/internal/application/ports"
	"github.com/jhoicas/Cobranza-api/internal/domain"
	"github.com/jhoicas/Cobranza-api/internal/infrastructure/delivery"
)

// ──────────────────────────────────────────────────────────────────────────────
// Resend
// ──────────────────────────────────────────────────────────────────────────────

func TestResendSend_PayloadYAuth(t *testing.T) {
	var captured struct {
		From    string   `json:"from"`
		To      []string `json:"to"`
		Subject string   `json:"subject"`
		HTML    string   `json:"html"`
	}
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{"id":"re-msg-1"}`))
	}))
	defer server.Close()

	svc := delivery.NewResendService(server.URL)
	id, err := svc.Send(context.Background(),
		ports.EmailCredentials{APIKey: "re-key", FromEmail: "cobros@acme.com"},
		ports.EmailMessage{To: "ana@example.com", Subject: "Payment Reminder - Ana", HTML: "<p>hola</p>"},
	)

	require.NoError(t, err)
	assert.Equal(t, "re-msg-1", id)
	assert.Equal(t, "Bearer re-key", gotAuth)
	assert.Equal(t, "cobros@acme.com", captured.From)
	assert.Equal(t, []string{"ana@example.com"}, captured.To)
	assert.Equal(t, "Payment Reminder - Ana", captured.Subject)
	assert.Equal(t, "<p>hola</p>", captured.HTML)
}

// Sin remitente configurado se usa la dirección sandbox del proveedor.
func TestResendSend_RemitenteSandboxPorDefecto(t *testing.T) {
	var gotFrom string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		gotFrom, _ = body["from"].(string)
		w.Write([]byte(`{"id":"re-msg-2"}`))
	}))
	defer server.Close()

	svc := delivery.NewResendService(server.URL)
	_, err := svc.Send(context.Background(),
		ports.EmailCredentials{APIKey: "re-key"},
		ports.EmailMessage{To: "ana@example.com", Subject: "s", HTML: "h"},
	)

	require.NoError(t, err)
	assert.Equal(t, "onboarding@resend.dev", gotFrom)
}

func TestResendSend_ErrorDelProveedor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"Invalid to address"}`))
	}))
	defer server.Close()

	svc := delivery.NewResendService(server.URL)
	_, err := svc.Send(context.Background(),
		ports.EmailCredentials{APIKey: "re-key"},
		ports.EmailMessage{To: "no-es-email", Subject: "s", HTML: "h"},
	)

	var delErr *domain.DeliveryError
	require.True(t, errors.As(err, &delErr))
	assert.Equal(t, "resend", delErr.Provider)
	assert.Equal(t, http.StatusUnprocessableEntity, delErr.StatusCode)
	assert.Contains(t, delErr.Message, "Invalid to address")
}

// ──────────────────────────────────────────────────────────────────────────────
// Twilio
// ──────────────────────────────────────────────────────────────────────────────

func testTwilioCreds() ports.TwilioCredentials {
	return ports.TwilioCredentials{
		AccountSID:  "AC123",
		AuthToken:   "secret",
		PhoneNumber: "+15550001111",
	}
}

func TestTwilioSendWhatsApp_FormYPrefijos(t *testing.T) {
	var gotPath, gotFrom, gotTo, gotBody string
	var gotUser, gotPass string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		require.NoError(t, r.ParseForm())
		gotFrom = r.PostFormValue("From")
		gotTo = r.PostFormValue("To")
		gotBody = r.PostFormValue("Body")
		w.Write([]byte(`{"sid":"SM123"}`))
	}))
	defer server.Close()

	svc := delivery.NewTwilioService(server.URL)
	id, err := svc.SendWhatsApp(context.Background(), testTwilioCreds(), "+573001112233", "Recordatorio de pago")

	require.NoError(t, err)
	assert.Equal(t, "SM123", id)
	assert.Equal(t, "/2010-04-01/Accounts/AC123/Messages.json", gotPath)
	assert.Equal(t, "AC123", gotUser)
	assert.Equal(t, "secret", gotPass)
	assert.Equal(t, "whatsapp:+15550001111", gotFrom)
	assert.Equal(t, "whatsapp:+573001112233", gotTo)
	assert.Equal(t, "Recordatorio de pago", gotBody)
}

func TestTwilioCall_TwiMLEscapado(t *testing.T) {
	var gotTwiml string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2010-04-01/Accounts/AC123/Calls.json", r.URL.Path)
		require.NoError(t, r.ParseForm())
		gotTwiml = r.PostFormValue("Twiml")
		w.Write([]byte(`{"sid":"CA123"}`))
	}))
	defer server.Close()

	svc := delivery.NewTwilioService(server.URL)
	id, err := svc.Call(context.Background(), testTwilioCreds(), "+573001112233", "Debe $1.200 <ya>")

	require.NoError(t, err)
	assert.Equal(t, "CA123", id)
	assert.Contains(t, gotTwiml, "<Response>")
	assert.Contains(t, gotTwiml, "<Say")
	assert.Contains(t, gotTwiml, "&lt;ya&gt;", "el contenido del mensaje va escapado como XML")
	assert.NotContains(t, gotTwiml, "<ya>")
}

func TestTwilioSendWhatsApp_ErrorDelProveedor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":21211,"message":"The 'To' number is not a valid phone number."}`))
	}))
	defer server.Close()

	svc := delivery.NewTwilioService(server.URL)
	_, err := svc.SendWhatsApp(context.Background(), testTwilioCreds(), "abc", "hola")

	var delErr *domain.DeliveryError
	require.True(t, errors.As(err, &delErr))
	assert.Equal(t, "twilio", delErr.Provider)
	assert.Equal(t, http.StatusBadRequest, delErr.StatusCode)
	assert.Contains(t, delErr.Message, "not a valid phone number")
}
