package handler

import (
	"net/http"

	"github.com/itchan-dev/kvboard/shared/api"
	"github.com/itchan-dev/kvboard/shared/domain"
	"github.com/itchan-dev/kvboard/shared/utils"
)

func (h *Handler) GetReplies(w http.ResponseWriter, r *http.Request) {
	replies, err := h.reply.List(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if replies == nil {
		replies = []domain.Reply{}
	}

	utils.WriteJSON(w, http.StatusOK, replies)
}

func (h *Handler) CreateReply(w http.ResponseWriter, r *http.Request) {
	var body api.CreateReplyRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	reply, err := h.reply.Create(r.Context(), domain.ReplyCreationData{
		ThreadId: body.ThreadId,
		Content:  body.Content,
		User:     body.User,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, reply)
}

func (h *Handler) DeleteReply(w http.ResponseWriter, r *http.Request) {
	id, err := readDeleteId(r, func(body api.DeleteReplyRequest) string { return body.ReplyId })
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.reply.Delete(r.Context(), id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	message := "reply deleted"
	if id == domain.DeleteAll {
		message = "all replies deleted"
	}
	utils.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: message})
}
