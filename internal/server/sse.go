package server

import (
	"io"
	"net/http"

	"github.com/alkime/steplever/internal/lever"
	"github.com/gin-gonic/gin"
)

// streamBuffer absorbs short bursts of transitions per SSE client;
// events published while a client's buffer is full are dropped.
const streamBuffer = 16

// handleStream pushes live transitions to the client as server-sent
// events until the client disconnects.
func (s *Server) handleStream(c *gin.Context) {
	host, ok := s.lookup(c)
	if !ok {
		return
	}

	ch := make(chan lever.Transition, streamBuffer)
	id, err := host.SubscribeEvents(ch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer host.UnsubscribeEvents(id)

	s.logger.Debug("Stream opened", "name", host.Name())
	defer s.logger.Debug("Stream closed", "name", host.Name())

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case tr := <-ch:
			c.SSEvent("transition", tr)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
