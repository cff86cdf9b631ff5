package issuer

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/passbridge/passbridge-go/pkg/provisioning"
	"github.com/passbridge/passbridge-go/pkg/wallet"
)

// PassesPath lists issued passes.
const PassesPath = "/v1/passes"

// HandlerConfig configures a simulated issuer.
type HandlerConfig struct {
	// Store records issued passes. Nil uses a MemoryStore.
	Store Store

	// Logger for operational messages. Nil discards.
	Logger *slog.Logger

	// Now returns the current time. Nil uses time.Now.
	Now func() time.Time
}

// Handler is a simulated issuer provisioning service.
type Handler struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
	mux    *http.ServeMux
}

// NewHandler creates a simulated issuer.
func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.Store == nil {
		cfg.Store = NewMemoryStore()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	h := &Handler{
		store:  cfg.Store,
		logger: cfg.Logger,
		now:    cfg.Now,
		mux:    http.NewServeMux(),
	}
	h.mux.HandleFunc(ProvisionPath, h.handleProvision)
	h.mux.HandleFunc(PassesPath, h.handlePasses)
	h.mux.HandleFunc("/health", h.handleHealth)
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleProvision(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req ProvisionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	material, rec, err := h.issue(req)
	if err != nil {
		h.logger.Info("provision rejected", "suffix", req.PrimaryAccountSuffix, "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.Save(r.Context(), rec); err != nil {
		h.logger.Error("failed to store record", "id", rec.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store record")
		return
	}

	h.logger.Info("pass issued", "id", rec.ID, "suffix", rec.PrimaryAccountSuffix)
	writeJSON(w, http.StatusOK, material)
}

func (h *Handler) issue(req ProvisionRequest) (provisioning.ServerMaterial, Record, error) {
	if req.PrimaryAccountSuffix == "" {
		return provisioning.ServerMaterial{}, Record{}, fmt.Errorf("primaryAccountSuffix is required")
	}
	if len(req.CertificateChain) == 0 {
		return provisioning.ServerMaterial{}, Record{}, fmt.Errorf("certificateChain is required")
	}
	nonce, err := provisioning.DecodeHex(req.Nonce)
	if err != nil || len(nonce) == 0 {
		return provisioning.ServerMaterial{}, Record{}, fmt.Errorf("nonce must be non-empty hex")
	}
	if _, err := provisioning.DecodeHex(req.NonceSignature); err != nil || req.NonceSignature == "" {
		return provisioning.ServerMaterial{}, Record{}, fmt.Errorf("nonceSignature must be non-empty hex")
	}
	devicePub, err := provisioning.DecodeHex(req.CertificateChain[0])
	if err != nil {
		return provisioning.ServerMaterial{}, Record{}, fmt.Errorf("certificateChain[0] must be hex")
	}

	network := req.PaymentNetwork
	if n, ok := wallet.ParseNetwork(network); ok {
		network = n.String()
	}

	id := uuid.New()
	payload := PassPayload{
		PrimaryAccountSuffix: req.PrimaryAccountSuffix,
		PaymentNetwork:       network,
		CardholderName:       req.CardholderName,
		DeviceAccountSuffix:  deviceAccountSuffix(id),
		PrimaryAccountID:     "pai-" + id.String(),
	}

	encrypted, ephemeralPub, err := SealPassData(devicePub, nonce, payload)
	if err != nil {
		return provisioning.ServerMaterial{}, Record{}, err
	}
	activation, err := ActivationData(ephemeralPub, nonce)
	if err != nil {
		return provisioning.ServerMaterial{}, Record{}, err
	}

	material := provisioning.ServerMaterial{
		EncryptedPassData:  provisioning.EncodeHex(encrypted),
		EphemeralPublicKey: provisioning.EncodeHex(ephemeralPub),
		ActivationData:     provisioning.EncodeHex(activation),
	}
	rec := Record{
		ID:                   id.String(),
		PrimaryAccountSuffix: req.PrimaryAccountSuffix,
		PaymentNetwork:       network,
		CardholderName:       req.CardholderName,
		DeviceAccountSuffix:  payload.DeviceAccountSuffix,
		EphemeralPublicKey:   material.EphemeralPublicKey,
		CreatedAt:            h.now(),
	}
	return material, rec, nil
}

// passRecord is the JSON form of a Record.
type passRecord struct {
	ID                   string    `json:"id"`
	PrimaryAccountSuffix string    `json:"primaryAccountSuffix"`
	PaymentNetwork       string    `json:"paymentNetwork,omitempty"`
	CardholderName       string    `json:"cardholderName,omitempty"`
	DeviceAccountSuffix  string    `json:"deviceAccountSuffix,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
}

func (h *Handler) handlePasses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	recs, err := h.store.ListBySuffix(r.Context(), r.URL.Query().Get("suffix"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]passRecord, 0, len(recs))
	for _, rec := range recs {
		out = append(out, passRecord{
			ID:                   rec.ID,
			PrimaryAccountSuffix: rec.PrimaryAccountSuffix,
			PaymentNetwork:       rec.PaymentNetwork,
			CardholderName:       rec.CardholderName,
			DeviceAccountSuffix:  rec.DeviceAccountSuffix,
			CreatedAt:            rec.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// deviceAccountSuffix derives a stable 4-digit device account suffix.
func deviceAccountSuffix(id uuid.UUID) string {
	n := (uint32(id[0])<<8 | uint32(id[1])) % 10000
	return fmt.Sprintf("%04d", n)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: strings.TrimSpace(msg)})
}
