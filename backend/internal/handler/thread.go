package handler

import (
	"net/http"

	"github.com/itchan-dev/kvboard/shared/api"
	"github.com/itchan-dev/kvboard/shared/domain"
	"github.com/itchan-dev/kvboard/shared/utils"
)

func (h *Handler) GetThreads(w http.ResponseWriter, r *http.Request) {
	threads, err := h.thread.List(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if threads == nil {
		threads = []domain.Thread{}
	}

	utils.WriteJSON(w, http.StatusOK, threads)
}

func (h *Handler) CreateThread(w http.ResponseWriter, r *http.Request) {
	var body api.CreateThreadRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	thread, err := h.thread.Create(r.Context(), domain.ThreadCreationData{
		Title:   body.Title,
		Content: body.Content,
		User:    body.User,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, thread)
}

func (h *Handler) DeleteThread(w http.ResponseWriter, r *http.Request) {
	id, err := readDeleteId(r, func(body api.DeleteThreadRequest) string { return body.ThreadId })
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.thread.Delete(r.Context(), id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	message := "thread deleted"
	if id == domain.DeleteAll {
		message = "all threads deleted"
	}
	utils.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: message})
}
