package handlers

import (
	"net/http"

	"coursehub-backend/pkg/common"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	common.RespondJSON(w, status, data)
}
