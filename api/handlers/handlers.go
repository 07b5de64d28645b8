package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/negobench/negobench/communication"
	"github.com/negobench/negobench/storage"
	"github.com/negobench/negobench/tournament"
)

// Handlers carries the API's collaborators: the active-run handle, the
// result store and the optional NATS broker. Nothing here is package
// state; main wires one instance into the router.
type Handlers struct {
	Runner *tournament.Runner
	Store  storage.Store
	Broker *communication.NATSBroker

	// broadcast defaults to the websocket hub; injectable in tests.
	broadcast func(eventType string, payload interface{})
}

func New(runner *tournament.Runner, store storage.Store, broker *communication.NATSBroker) *Handlers {
	return &Handlers{
		Runner:    runner,
		Store:     store,
		Broker:    broker,
		broadcast: communication.BroadcastEvent,
	}
}

type startTournamentRequest struct {
	Models []string `json:"models" binding:"required"`
	Rounds int      `json:"rounds" binding:"required"`
	Label  string   `json:"label"`
}

// StartTournament launches a tournament, superseding any active one.
func (h *Handlers) StartTournament(c *gin.Context) {
	var req startTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tournament request"})
		return
	}
	if len(req.Models) < 2 || req.Rounds < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "need at least 2 models and 1 round"})
		return
	}

	opts := tournament.Options{
		Models: req.Models,
		Rounds: req.Rounds,
		Label:  req.Label,
		Sink:   h.emit,
	}

	// Announce before the scheduler goroutine exists, so clients never
	// see a LOG line ahead of the start event.
	h.broadcast(communication.EventTournamentStart, req)

	h.Runner.Start(opts, func(err error) {
		if err != nil {
			h.broadcast(communication.EventTournamentError, err.Error())
			h.publish("tournament error: " + err.Error())
			return
		}
		h.broadcast(communication.EventTournamentComplete, nil)
		h.publish("tournament complete")
	})

	c.JSON(http.StatusAccepted, gin.H{"status": "started"})
}

// StopTournament cancels whichever tournament is active. Stopping when
// none is running is a no-op, not an error.
func (h *Handlers) StopTournament(c *gin.Context) {
	h.Runner.Stop()
	c.JSON(http.StatusOK, gin.H{"status": "stopped"})
}

// ListRuns serves the manifest index, newest first.
func (h *Handlers) ListRuns(c *gin.Context) {
	manifest, err := h.Store.ReadManifest()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read manifest"})
		return
	}
	c.JSON(http.StatusOK, manifest)
}

// GetRun serves one full match record including the per-turn log.
func (h *Handlers) GetRun(c *gin.Context) {
	res, err := h.Store.ReadRun(c.Param("id"))
	if errors.Is(err, storage.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read run"})
		return
	}
	c.JSON(http.StatusOK, res)
}

// emit is the tournament log sink: server log, dashboard broadcast and
// optional NATS fan-out for every progress line.
func (h *Handlers) emit(line string) {
	log.Println(line)
	h.broadcast(communication.EventLog, line)
	if err := h.Broker.Publish(communication.EventsSubject, []byte(line)); err != nil {
		log.Printf("NATS publish failed: %v", err)
	}
}

func (h *Handlers) publish(line string) {
	log.Println(line)
	if err := h.Broker.Publish(communication.EventsSubject, []byte(line)); err != nil {
		log.Printf("NATS publish failed: %v", err)
	}
}
