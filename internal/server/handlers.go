package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/hsl-camera/internal/detection"
	"github.com/ironsheep/hsl-camera/internal/imaging"
)

// APIError is the JSON error body returned by every endpoint.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

type errorBody struct {
	Error APIError `json:"error"`
}

// errorResponse writes a JSON error with the given details.
func errorResponse(w http.ResponseWriter, code int, message string, err error) {
	body := errorBody{Error: APIError{Code: code, Message: message}}
	if err != nil {
		body.Error.Data = err.Error()
	}
	writeJSON(w, code, body)
}

// writeJSON writes v as indented JSON.
func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logrus.WithError(err).Warn("Failed to encode response")
	}
}

// writePNG encodes f and sends it with the given extra headers.
func writePNG(w http.ResponseWriter, f *imaging.Frame, headers map[string]string) {
	var buf bytes.Buffer
	if err := imaging.EncodePNG(&buf, f); err != nil {
		errorResponse(w, http.StatusInternalServerError, "Encoding failed", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Frame-Width", strconv.Itoa(f.Width))
	w.Header().Set("X-Frame-Height", strconv.Itoa(f.Height))
	for k, v := range headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// decodeUpload reads an image body into a scaled frame.
func (s *Server) decodeUpload(w http.ResponseWriter, r *http.Request) (*imaging.Frame, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			errorResponse(w, http.StatusRequestEntityTooLarge, "Image too large", err)
		} else {
			errorResponse(w, http.StatusBadRequest, "Invalid body", err)
		}
		return nil, false
	}

	frame, err := s.loader.Decode(bytes.NewReader(data))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid image", err)
		return nil, false
	}
	return frame, true
}

func formatCoverage(c float64) string {
	return strconv.FormatFloat(c, 'f', 4, 64)
}

// === Index ===

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"routes": s.routeTable(),
	})
}

// === Range Handlers ===

func (s *Server) handleRangeGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ranges.Snapshot())
}

func (s *Server) handleRangePut(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 64<<10))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid body", err)
		return
	}

	var decodeErr error
	rng, err := s.ranges.Update(func(cur *detection.HSLRange) error {
		// Unmarshal over the current values so absent fields are kept.
		decodeErr = json.Unmarshal(body, cur)
		return decodeErr
	})
	switch {
	case decodeErr != nil:
		errorResponse(w, http.StatusBadRequest, "Invalid params", decodeErr)
		return
	case errors.Is(err, detection.ErrInvalidRange):
		errorResponse(w, http.StatusUnprocessableEntity, "Range out of bounds", err)
		return
	case err != nil:
		errorResponse(w, http.StatusInternalServerError, "Range update failed", err)
		return
	}

	writeJSON(w, http.StatusOK, rng)
}

// === Processing Handlers ===

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")
	if filter != "" && filter != imaging.FilterNone {
		if !knownFilter(filter) {
			errorResponse(w, http.StatusBadRequest, "Unknown filter", fmt.Errorf("filter %q", filter))
			return
		}
	}

	frame, ok := s.decodeUpload(w, r)
	if !ok {
		return
	}

	if filter != "" && filter != imaging.FilterNone {
		out, err := imaging.ApplyFilter(frame, filter)
		if err != nil {
			errorResponse(w, http.StatusBadRequest, "Filter failed", err)
			return
		}
		writePNG(w, out, map[string]string{"X-Filter": filter})
		return
	}

	res, err := s.pipeline.RunWithMask(frame, s.ranges.Snapshot())
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Processing failed", err)
		return
	}
	writePNG(w, res.Frame, map[string]string{
		"X-Mask-Coverage": formatCoverage(res.Mask.Coverage()),
	})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	frame, ok := s.decodeUpload(w, r)
	if !ok {
		return
	}
	s.snapshots.Put(frame)
	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"width":  frame.Width,
		"height": frame.Height,
	})
}

func (s *Server) handleProcessed(w http.ResponseWriter, r *http.Request) {
	out, ok := s.latest.Latest()
	if !ok {
		errorResponse(w, http.StatusNotFound, "No frame processed yet", nil)
		return
	}
	writePNG(w, out.Frame, map[string]string{
		"X-Frame-ID":      out.ID,
		"X-Frame-Seq":     strconv.FormatUint(out.Seq, 10),
		"X-Mask-Coverage": formatCoverage(out.Coverage),
	})
}

// === Debug Handlers ===

func (s *Server) handleHSL(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var rgb [3]uint8
	for i, name := range []string{"r", "g", "b"} {
		v, err := strconv.ParseUint(q.Get(name), 10, 8)
		if err != nil {
			errorResponse(w, http.StatusBadRequest, "Invalid params", fmt.Errorf("%s: must be an integer in 0-255", name))
			return
		}
		rgb[i] = uint8(v)
	}
	writeJSON(w, http.StatusOK, imaging.NewColorResult(rgb[0], rgb[1], rgb[2], 255))
}

func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"filters": imaging.FilterNames(),
	})
}

func knownFilter(name string) bool {
	for _, n := range imaging.FilterNames() {
		if n == name {
			return true
		}
	}
	return false
}
