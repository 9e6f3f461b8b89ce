package public

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/sngm3741/match-intake/api/internal/interfaces/http/common"
	intakeapp "github.com/sngm3741/match-intake/api/internal/intake/application"
	"github.com/sngm3741/match-intake/api/internal/intake/domain"
)

func (h *Handler) submitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := middleware.GetReqID(r.Context())
		defer r.Body.Close()

		if r.ContentLength > h.maxBodyBytes {
			common.WriteError(h.logger, w, http.StatusRequestEntityTooLarge, common.MessagePayloadTooLarge)
			return
		}

		var body []byte
		if isJSONContent(r.Header.Get("Content-Type")) {
			var err error
			body, err = io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					common.WriteError(h.logger, w, http.StatusRequestEntityTooLarge, common.MessagePayloadTooLarge)
					return
				}
				h.logger.Printf("[%s] リクエストボディの読み込みに失敗: %v", reqID, err)
				common.WriteError(h.logger, w, http.StatusBadRequest, domain.ErrInvalidJSON.Reason)
				return
			}
		}

		sub, err := domain.ParseSubmission(body)
		if err != nil {
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				verr = domain.ErrMissingSections
			}
			common.WriteError(h.logger, w, http.StatusBadRequest, verr.Reason)
			return
		}

		// A started append runs to completion even if the client goes away.
		ctx := context.WithoutCancel(r.Context())
		receipt, err := h.submissions.Submit(ctx, intakeapp.SubmitCommand{Submission: sub})
		if err != nil {
			h.logger.Printf("[%s] /submit の保存に失敗: %v", reqID, err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, common.MessageServerError)
			return
		}

		h.logger.Printf("[%s] 保存しました: %s", reqID, receipt.SavedTo)
		common.WriteJSON(h.logger, w, http.StatusOK, common.Result{OK: true, SavedTo: receipt.SavedTo})
	}
}

// isJSONContent reports whether the declared content type is JSON. Other
// bodies are left unread and treated as empty.
func isJSONContent(contentType string) bool {
	if strings.TrimSpace(contentType) == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
