package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/division"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/service"
	"github.com/agbru/bigcalc/pkg/models"
)

// defaultOp is the operation of /calculate when op is omitted.
const defaultOp = models.OpAdd

var validate = validator.New()

// calculateParams are the query parameters of /calculate.
type calculateParams struct {
	A    string `validate:"required"`
	B    string `validate:"required"`
	Op   string `validate:"oneof=add sub mul div cmp"`
	Algo string `validate:"required"`
}

// handleHealth responds to health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSONResponse(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

// handleAlgorithms returns the names of the division strategies.
func (s *Server) handleAlgorithms(w http.ResponseWriter, r *http.Request) {
	s.writeJSONResponse(w, http.StatusOK, map[string]any{
		"algorithms": s.service.Algorithms(),
	})
}

// handleCalculate evaluates GET /calculate?a=&b=&op=&algo=.
//
// Status codes: 200 with the result; 400 for missing, malformed or oversized
// operands, an unknown operation or an unknown strategy; 422 for a division
// by zero; 504 when the calculation times out.
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	p, err := s.parseCalculateParams(r)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	a, err := bigint.Parse(p.A)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("Invalid 'a' parameter: %v", err))
		return
	}
	b, err := bigint.Parse(p.B)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("Invalid 'b' parameter: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	start := time.Now()
	res, err := s.service.Calculate(ctx, service.Request{Op: p.Op, Algo: p.Algo, A: a, B: b})
	duration := time.Since(start)

	resp := models.OperationResponse{Op: p.Op, A: a.String(), B: b.String(), Duration: duration.String()}
	if p.Op == models.OpDiv {
		resp.Algorithm = p.Algo
	}

	var unknown *division.UnknownDividerError
	switch {
	case err == nil:
		resp.Result = res.Value.String()
		s.writeJSONResponse(w, http.StatusOK, resp)
	case errors.Is(err, bigint.ErrDivisionByZero):
		resp.Error = err.Error()
		s.writeJSONResponse(w, http.StatusUnprocessableEntity, resp)
	case errors.Is(err, service.ErrMaxDigitsExceeded):
		s.writeErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("Operands are limited to %d digits. This limit prevents resource exhaustion.", s.securityConfig.MaxDigits))
	case errors.As(err, &unknown), errors.Is(err, service.ErrUnknownOperation):
		s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		resp.Error = "calculation timed out"
		s.writeJSONResponse(w, http.StatusGatewayTimeout, resp)
	default:
		s.logger.Error("calculation failed", err)
		resp.Error = err.Error()
		s.writeJSONResponse(w, http.StatusInternalServerError, resp)
	}
}

// parseCalculateParams reads and validates the query parameters. Length is
// checked here on the raw text (a sign plus MaxDigits digits) so oversized
// input is rejected before it is parsed.
func (s *Server) parseCalculateParams(r *http.Request) (calculateParams, error) {
	q := r.URL.Query()
	p := calculateParams{
		A:    q.Get("a"),
		B:    q.Get("b"),
		Op:   strings.ToLower(q.Get("op")),
		Algo: strings.ToLower(q.Get("algo")),
	}
	if p.Op == "" {
		p.Op = defaultOp
	}
	if p.Algo == "" {
		p.Algo = config.DefaultAlgo
	}

	if err := validate.Struct(p); err != nil {
		return p, validationError(err)
	}
	if s.securityConfig.MaxDigits > 0 {
		rule := fmt.Sprintf("max=%d", s.securityConfig.MaxDigits+1)
		for _, f := range []struct{ name, value string }{{"a", p.A}, {"b", p.B}} {
			if err := validate.Var(f.value, rule); err != nil {
				return p, apperrors.NewValidationError(f.name,
					fmt.Sprintf("operands are limited to %d digits", s.securityConfig.MaxDigits), len(f.value))
			}
		}
	}
	return p, nil
}

// validationError converts the first validator failure into a ValidationError
// naming the query parameter.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return apperrors.NewValidationError(field, fmt.Sprintf("missing '%s' parameter", field), nil)
	case "oneof":
		return apperrors.NewValidationError(field, fmt.Sprintf("must be one of: %s", fe.Param()), fe.Value())
	default:
		return apperrors.NewValidationError(field, fe.Tag(), fe.Value())
	}
}

// writeJSONResponse writes data as JSON with the given status.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding JSON response", err)
	}
}

// writeErrorResponse writes a models.ErrorResponse.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	s.writeJSONResponse(w, statusCode, models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
