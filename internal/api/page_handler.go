package api

import (
	"embed"
	"html/template"
	"net/http"

	"DrishtiGPT-Learning-Backend/internal/model"
	"DrishtiGPT-Learning-Backend/internal/quiz"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates returns the page templates for gin's SetHTMLTemplate.
func Templates() *template.Template {
	funcs := template.FuncMap{
		"optionLabel": model.OptionLabel,
		"inc":         func(i int) int { return i + 1 },
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

type pageData struct {
	Videos      []model.Video
	Video       model.Video
	WidgetURL   string
	LastSummary string
	Quiz        quiz.View
	Score       *quiz.Score
}

// IndexHandler renders the single page. ?video= picks the video; otherwise the
// session's last video, otherwise the first in the catalog.
func (h *AssistantHandler) IndexHandler(c *gin.Context) {
	sc := currentSession(c)
	snap := h.assistant.Snapshot(sc)
	videos := h.assistant.Videos()

	data := pageData{
		Videos:      videos,
		WidgetURL:   h.assistant.WidgetURL(),
		LastSummary: snap.LastSummary,
		Quiz:        snap.Quiz,
		Score:       snap.Quiz.Score,
	}

	wanted := c.DefaultQuery("video", snap.VideoID)
	for _, v := range videos {
		if v.ID == wanted {
			data.Video = v
			break
		}
	}
	if data.Video.ID == "" && len(videos) > 0 {
		data.Video = videos[0]
	}

	c.HTML(http.StatusOK, "index.html", data)
}
