package httpapi

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"io"
	"math/big"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/DoyleJ11/ball-contest-support/internal/config"
	"github.com/DoyleJ11/ball-contest-support/internal/hub"
	"github.com/DoyleJ11/ball-contest-support/internal/match"
	"github.com/DoyleJ11/ball-contest-support/internal/profile"
	"github.com/DoyleJ11/ball-contest-support/internal/types"
	wire "github.com/DoyleJ11/ball-contest-support/pkg/types"
)

const maxBody = 1 << 20

// Deps is what the handlers need from the rest of the process.
type Deps struct {
	Hub      *hub.Hub
	Profiles profile.Store
	Defaults config.Tuning
	Logger   *zap.Logger
}

func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := range code {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, struct {
		Error string `json:"error"`
	}{Error: msg})
}

// decode reads an optional JSON body; an empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

type createMatchRequest struct {
	Code    string `json:"code,omitempty"`
	Profile string `json:"profile,omitempty"`
	Tuning  string `json:"tuning,omitempty"` // YAML document, overlaid on the defaults
}

// CreateMatch starts a match with, in order of preference, an inline tuning
// document, a stored profile or the server defaults.
func CreateMatch(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createMatchRequest
		if err := decode(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}

		tuning := d.Defaults
		switch {
		case req.Tuning != "":
			t, err := config.ParseTuning([]byte(req.Tuning))
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			tuning = t
		case req.Profile != "":
			p, err := d.Profiles.Get(r.Context(), req.Profile)
			if errors.Is(err, profile.ErrProfileNotFound) {
				writeError(w, http.StatusNotFound, "profile not found")
				return
			}
			if err != nil {
				d.Logger.Error("load profile", zap.String("profile", req.Profile), zap.Error(err))
				writeError(w, http.StatusInternalServerError, "failed to load profile")
				return
			}
			tuning = p.Tuning
		}

		code := req.Code
		for attempt := 0; ; attempt++ {
			if code == "" {
				c, err := GenerateCode()
				if err != nil {
					writeError(w, http.StatusInternalServerError, "failed to generate code")
					return
				}
				code = c
			}
			_, err := d.Hub.Create(r.Context(), code, tuning)
			if err == nil {
				break
			}
			if errors.Is(err, hub.ErrMatchExists) {
				if req.Code != "" {
					writeError(w, http.StatusConflict, "match already exists")
					return
				}
				if attempt < 5 {
					d.Logger.Debug("collision on code, regenerating", zap.String("code", code))
					code = ""
					continue
				}
			}
			writeError(w, http.StatusInternalServerError, "failed to create match")
			return
		}

		writeJSON(w, http.StatusCreated, struct {
			Code string `json:"code"`
		}{Code: code})
	}
}

func ListMatches(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		codes, err := d.Hub.List(r.Context())
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Codes []string `json:"codes"`
		}{Codes: codes})
	}
}

// lookup resolves {code} or writes the error response.
func lookup(d Deps, w http.ResponseWriter, r *http.Request) (*match.Match, bool) {
	m, err := d.Hub.Get(r.Context(), chi.URLParam(r, "code"))
	switch {
	case errors.Is(err, hub.ErrMatchNotFound):
		writeError(w, http.StatusNotFound, "match not found")
		return nil, false
	case err != nil:
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return nil, false
	}
	return m, true
}

func GetMatch(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, ok := lookup(d, w, r)
		if !ok {
			return
		}
		v, err := m.State(r.Context())
		if err != nil {
			writeError(w, http.StatusGone, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, types.ToSnapshot(v.Latest))
	}
}

func DeleteMatch(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := lookup(d, w, r); !ok {
			return
		}
		if err := d.Hub.Remove(r.Context(), chi.URLParam(r, "code")); err != nil {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// PostObservation feeds a match. A code nobody created yet starts a match
// with the server defaults, so a team can begin streaming straight away.
func PostObservation(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var o wire.Observation
		if err := decode(r, &o); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		msg, err := types.ToObserve(o)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		m, err := d.Hub.Ensure(r.Context(), chi.URLParam(r, "code"), d.Defaults)
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		if err := m.Send(r.Context(), msg); err != nil {
			writeError(w, http.StatusGone, err.Error())
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}
}

func SetEnabled(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, ok := lookup(d, w, r)
		if !ok {
			return
		}
		var req struct {
			Enabled *bool `json:"enabled"`
		}
		if err := decode(r, &req); err != nil || req.Enabled == nil {
			writeError(w, http.StatusBadRequest, `body must be {"enabled": true|false}`)
			return
		}
		if err := m.Send(r.Context(), match.SetEnabled{Enabled: *req.Enabled}); err != nil {
			writeError(w, http.StatusGone, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type profileDoc struct {
	Name      string    `json:"name"`
	Tuning    string    `json:"tuning"` // YAML
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

func toDoc(p profile.Profile) (profileDoc, error) {
	data, err := p.Tuning.Marshal()
	if err != nil {
		return profileDoc{}, err
	}
	return profileDoc{Name: p.Name, Tuning: string(data), UpdatedAt: p.UpdatedAt}, nil
}

func SaveProfile(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doc profileDoc
		if err := decode(r, &doc); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		t, err := config.ParseTuning([]byte(doc.Tuning))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		err = d.Profiles.Save(r.Context(), profile.Profile{Name: doc.Name, Tuning: t})
		switch {
		case errors.Is(err, profile.ErrEmptyName):
			writeError(w, http.StatusBadRequest, err.Error())
			return
		case err != nil:
			d.Logger.Error("save profile", zap.String("profile", doc.Name), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save profile")
			return
		}
		d.Logger.Info("profile saved", zap.String("profile", doc.Name))
		w.WriteHeader(http.StatusNoContent)
	}
}

func GetProfile(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := d.Profiles.Get(r.Context(), chi.URLParam(r, "name"))
		if errors.Is(err, profile.ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, "profile not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to load profile")
			return
		}
		doc, err := toDoc(p)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to encode profile")
			return
		}
		writeJSON(w, http.StatusOK, doc)
	}
}

func ListProfiles(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := d.Profiles.List(r.Context())
		if err != nil {
			d.Logger.Error("list profiles", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to list profiles")
			return
		}
		names := make([]string, 0, len(all))
		for _, p := range all {
			names = append(names, p.Name)
		}
		writeJSON(w, http.StatusOK, struct {
			Names []string `json:"names"`
		}{Names: names})
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
