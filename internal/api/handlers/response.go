package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Коды ошибок, общие для всех ручек
const (
	KindInvalidBody  = "INVALID_BODY"
	KindMissingParam = "MISSING_PARAMS"
	KindNotFound     = "NOT_FOUND"
	KindInvalidInput = "INVALID_INPUT"
	KindUnauthorized = "UNAUTHORIZED"
	KindRateLimit    = "RATE_LIMIT"
	KindServerError  = "SERVER_ERROR"
)

const maxBodyBytes = 1 << 20

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	OK    bool        `json:"ok"`
	Error string      `json:"error"`
	Meta  interface{} `json:"meta,omitempty"`
}

// DataResponse тело успешного ответа с данными
type DataResponse struct {
	OK   bool        `json:"ok"`
	Data interface{} `json:"data"`
}

// RespondJSON пишет JSON-ответ с заданным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondData отвечает {ok: true, data}
func RespondData(w http.ResponseWriter, status int, data interface{}) {
	RespondJSON(w, status, DataResponse{OK: true, Data: data})
}

// RespondError отвечает {ok: false, error, meta?}
func RespondError(w http.ResponseWriter, status int, kind string, meta interface{}) {
	RespondJSON(w, status, ErrorResponse{OK: false, Error: kind, Meta: meta})
}

func RespondBadRequest(w http.ResponseWriter, kind string) {
	RespondError(w, http.StatusBadRequest, kind, nil)
}

func RespondNotFound(w http.ResponseWriter) {
	RespondError(w, http.StatusNotFound, KindNotFound, nil)
}

func RespondUnauthorized(w http.ResponseWriter) {
	RespondError(w, http.StatusUnauthorized, KindUnauthorized, nil)
}

func RespondTooManyRequests(w http.ResponseWriter, kind string, meta interface{}) {
	RespondError(w, http.StatusTooManyRequests, kind, meta)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, KindServerError, nil)
}

// DecodeJSON читает тело запроса в v, ограничивая размер
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	defer r.Body.Close()

	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty body")
		}
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}
