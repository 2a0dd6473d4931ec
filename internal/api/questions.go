package api

import "net/http"

// quickQuestions are the curated starter questions shown as chips in the UI.
var quickQuestions = []string{
	"Who was the top scorer?",
	"What was the final score?",
	"Who had the most rebounds?",
	"Who made the most 3-pointers?",
}

func handleQuestions(w http.ResponseWriter, r *http.Request) {
	if err := requireRole(r, "viewer"); err != nil {
		writeError(r.Context(), w, http.StatusForbidden, "FORBIDDEN", err.Error(), false, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": quickQuestions})
}
