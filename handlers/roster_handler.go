package handlers

import (
	"net/http"

	"github.com/Dosada05/competition-registry/services"
)

type RosterHandler struct {
	rosterService services.RosterService
}

func NewRosterHandler(rosterService services.RosterService) *RosterHandler {
	return &RosterHandler{rosterService: rosterService}
}

// GetCompetitionRoster godoc
// @Summary Стартовый протокол соревнования
// @Tags roster
// @Description Участники по гонкам в протокольном порядке, с флагами принадлежности к особым зачётам.
// @Produce json
// @Param competitionID path string true "Competition ID"
// @Success 200 {object} map[string]interface{} "Протокол"
// @Failure 404 {object} map[string]string "Соревнование не найдено"
// @Router /competitions/{competitionID}/roster [get]
func (h *RosterHandler) GetCompetitionRoster(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getUUIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	roster, err := h.rosterService.GetCompetitionRoster(r.Context(), competitionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"roster": roster}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
