package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"time"

	"ekowallet/internal/domain"
	"ekowallet/internal/dto"
	"ekowallet/internal/hdwallet"
	"ekowallet/internal/observability/metrics"
	"ekowallet/internal/service"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// XFF can be a list: client, proxy1, proxy2...
		ip := strings.TrimSpace(strings.Split(xff, ",")[0])
		if addr, err := netip.ParseAddr(ip); err == nil {
			return addr.WithZone("").String()
		}
	}
	if addrPort, err := netip.ParseAddrPort(r.RemoteAddr); err == nil {
		return addrPort.Addr().WithZone("").String()
	}
	return r.RemoteAddr
}

type RouterConfig struct {
	MnemonicEntropyBits int
}

func NewRouter(cfg RouterConfig, wallets service.WalletService, auth service.AuthService, totp service.TOTPService) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/v1/wallets/create", instrument("/v1/wallets/create", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req dto.CreateWalletRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		userID, ok := parseID(w, req.UserID, "userUuid")
		if !ok {
			return
		}
		mnemonic, err := wallets.GenerateMnemonic(cfg.MnemonicEntropyBits)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		id, err := wallets.Create(r.Context(), userID, req.Name, mnemonic)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, dto.CreateWalletResponse{WalletID: id.String()})
	}))

	mux.HandleFunc("/v1/wallets/rename", instrument("/v1/wallets/rename", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req dto.RenameWalletRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		walletID, ok := parseID(w, req.WalletID, "uuid")
		if !ok {
			return
		}
		if err := wallets.Rename(r.Context(), walletID, req.Name); err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct{}{})
	}))

	mux.HandleFunc("/v1/wallets/list", instrument("/v1/wallets/list", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req dto.ListWalletsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		userID, ok := parseID(w, req.UserID, "userUuid")
		if !ok {
			return
		}
		out, err := wallets.ListByUser(r.Context(), userID)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}))

	mux.HandleFunc("/v1/wallets/delete", instrument("/v1/wallets/delete", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete && r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req dto.DeleteWalletRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		walletID, ok := parseID(w, req.WalletID, "uuid")
		if !ok {
			return
		}
		userID, ok := parseID(w, req.UserID, "userUuid")
		if !ok {
			return
		}
		if err := wallets.SoftDelete(r.Context(), walletID, userID, req.Password); err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct{}{})
	}))

	mux.HandleFunc("/v1/wallets/deriveAddress", instrument("/v1/wallets/deriveAddress", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req dto.DeriveAddressRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		account, err := wallets.DeriveAccount(req.Mnemonic)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, dto.DeriveAddressResponse{
			PublicKey:  account.PublicKey,
			PrivateKey: account.PrivateKey,
			Address:    account.Address,
		})
	}))

	mux.HandleFunc("/v1/auth/register", instrument("/v1/auth/register", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req dto.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		res, err := auth.Register(r.Context(), req)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, res)
	}))

	mux.HandleFunc("/v1/auth/login", instrument("/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req dto.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		res, err := auth.Login(r.Context(), req, clientIP(r), r.UserAgent())
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}))

	mux.HandleFunc("/v1/auth/2fa/verify", instrument("/v1/auth/2fa/verify", func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeTwoFactor(w, r)
		if !ok {
			return
		}
		userID, ok := parseID(w, req.UserID, "uuid")
		if !ok {
			return
		}
		res, err := auth.VerifyTwoFactor(r.Context(), userID, req.Code, clientIP(r), r.UserAgent())
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}))

	mux.HandleFunc("/v1/auth/2fa/setup", instrument("/v1/auth/2fa/setup", func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeTwoFactor(w, r)
		if !ok {
			return
		}
		userID, ok := parseID(w, req.UserID, "uuid")
		if !ok {
			return
		}
		uri, err := totp.GenerateSecret(r.Context(), userID)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			OTPAuthURI string `json:"otpauthUri"`
		}{OTPAuthURI: uri})
	}))

	mux.HandleFunc("/v1/auth/2fa/enable", instrument("/v1/auth/2fa/enable", func(w http.ResponseWriter, r *http.Request) {
		handleTwoFactorToggle(w, r, totp.Enable)
	}))

	mux.HandleFunc("/v1/auth/2fa/disable", instrument("/v1/auth/2fa/disable", func(w http.ResponseWriter, r *http.Request) {
		handleTwoFactorToggle(w, r, totp.Disable)
	}))

	mux.HandleFunc("/v1/auth/forgotPassword", instrument("/v1/auth/forgotPassword", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req dto.ForgotPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if err := auth.ForgotPassword(r.Context(), req.Email); err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct{}{})
	}))

	mux.HandleFunc("/v1/auth/resetPassword", instrument("/v1/auth/resetPassword", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req dto.ResetPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if err := auth.ResetPassword(r.Context(), req); err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct{}{})
	}))

	return mux
}

func handleTwoFactorToggle(w http.ResponseWriter, r *http.Request, toggle func(ctx context.Context, userID uuid.UUID, code string) error) {
	req, ok := decodeTwoFactor(w, r)
	if !ok {
		return
	}
	userID, ok := parseID(w, req.UserID, "uuid")
	if !ok {
		return
	}
	if err := toggle(r.Context(), userID, req.Code); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func decodeTwoFactor(w http.ResponseWriter, r *http.Request) (dto.TwoFactorRequest, bool) {
	var req dto.TwoFactorRequest
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return req, false
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func parseID(w http.ResponseWriter, raw, field string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		http.Error(w, "invalid "+field, http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeEngineError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrInvalidCode):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrDuplicateSeed),
		errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrSecretNotProvisioned):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrKeyDerivation):
		status = http.StatusInternalServerError
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, hdwallet.ErrInvalidEntropy),
		errors.Is(err, hdwallet.ErrInvalidMnemonic):
		status = http.StatusBadRequest
	}
	http.Error(w, err.Error(), status)
}

// instrument records request count and latency per route.
func instrument(path string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
		metrics.HTTPRequestDurationSeconds.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}
