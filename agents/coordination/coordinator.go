// Package coordination is the front door for every request. The coordinator
// owns the dispatcher and the worker agents behind it, and it performs all
// chaining between workers itself; workers never address each other.
package coordination

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/getsentry/sentry-go"

	"github.com/Conceptual-Machines/moodtunes-agents-go/agents/curator"
	"github.com/Conceptual-Machines/moodtunes-agents-go/agents/memory"
	"github.com/Conceptual-Machines/moodtunes-agents-go/bus"
	"github.com/Conceptual-Machines/moodtunes-agents-go/models"
	"github.com/Conceptual-Machines/moodtunes-agents-go/recommend"
)

// Operation names accepted on the bus.
const (
	OpClassify       = "classify"
	OpResolve        = "resolve"
	OpSearch         = "search"
	OpRecommend      = "recommend"
	OpCreatePlaylist = "create_playlist"
	OpStore          = "store"
	OpRecent         = "recent"
)

// Bus payloads, one message shape per operation.
type (
	// ClassifyRequest asks the emotion worker for an emotion word.
	ClassifyRequest struct {
		Text string
	}

	// ResolveRequest asks the weather worker for a location's mood.
	ResolveRequest struct {
		Location string
	}

	// TracksRequest asks the curator worker for tracks, either by mood
	// search or by feature-steered recommendation.
	TracksRequest struct {
		Emotion string
		Limit   int
	}

	// CreatePlaylistRequest asks the curator worker to create a playlist
	// on the session's Spotify account.
	CreatePlaylistRequest struct {
		Session *recommend.SpotifySession
		Request recommend.PlaylistRequest
	}

	// StoreRequest asks the memory worker to log an interaction.
	StoreRequest struct {
		UserID      string
		Interaction models.Interaction
	}

	// RecentRequest asks the memory worker for a user's history.
	RecentRequest struct {
		UserID string
	}
)

var workerForOp = map[string]bus.Address{
	OpClassify:       bus.AddrEmotion,
	OpResolve:        bus.AddrWeather,
	OpSearch:         bus.AddrCurator,
	OpRecommend:      bus.AddrCurator,
	OpCreatePlaylist: bus.AddrCurator,
	OpStore:          bus.AddrMemory,
	OpRecent:         bus.AddrMemory,
}

// Coordinator routes requests to the workers and chains their answers.
type Coordinator struct {
	dispatcher *bus.Dispatcher
	service    recommend.Service
	curator    *curator.CuratorAgent
	memory     *memory.MemoryAgent
}

// NewCoordinator wires a coordinator around its own dispatcher.
func NewCoordinator(service recommend.Service, curatorAgent *curator.CuratorAgent, memoryAgent *memory.MemoryAgent) *Coordinator {
	return NewCoordinatorWithDispatcher(bus.NewDispatcher(), service, curatorAgent, memoryAgent)
}

// NewCoordinatorWithDispatcher wires a coordinator around an existing
// dispatcher, usually one with a shorter request timeout.
func NewCoordinatorWithDispatcher(dispatcher *bus.Dispatcher, service recommend.Service, curatorAgent *curator.CuratorAgent, memoryAgent *memory.MemoryAgent) *Coordinator {
	return &Coordinator{
		dispatcher: dispatcher,
		service:    service,
		curator:    curatorAgent,
		memory:     memoryAgent,
	}
}

// Start registers one worker per agent on the dispatcher. It must be called
// before any request method.
func (c *Coordinator) Start(ctx context.Context) error {
	workers := map[bus.Address]bus.Handler{
		bus.AddrEmotion: c.handleEmotion,
		bus.AddrWeather: c.handleWeather,
		bus.AddrCurator: c.handleCurator,
		bus.AddrMemory:  c.handleMemory,
	}
	for addr, handler := range workers {
		if err := c.dispatcher.Register(addr, handler); err != nil {
			return fmt.Errorf("registering %s worker: %w", addr, err)
		}
	}
	go func() {
		<-ctx.Done()
		c.dispatcher.Close()
	}()
	log.Printf("🧭 COORDINATOR STARTED: %d workers on the bus", len(workers))
	return nil
}

// Close shuts down the bus and fails any in-flight requests.
func (c *Coordinator) Close() {
	c.dispatcher.Close()
}

// HandleMood answers a free-text request: classify the text, fetch tracks
// for the emotion, and log the interaction to the user's history.
func (c *Coordinator) HandleMood(ctx context.Context, userID, text string, limit int) (*models.MoodResult, error) {
	transaction := sentry.StartTransaction(ctx, "coordinator.mood")
	defer transaction.Finish()

	reply, err := c.request(ctx, bus.AddrEmotion, OpClassify, ClassifyRequest{Text: text})
	if err != nil {
		transaction.SetTag("success", "false")
		return nil, fmt.Errorf("emotion worker: %w", err)
	}
	emotion, ok := reply.(string)
	if !ok {
		return nil, fmt.Errorf("emotion worker: unexpected reply %T", reply)
	}

	rec, err := c.tracksFor(ctx, emotion, limit)
	if err != nil {
		transaction.SetTag("success", "false")
		return nil, err
	}

	transaction.SetTag("success", "true")
	transaction.SetTag("emotion", emotion)

	c.remember(userID, models.Interaction{
		Kind:       "mood",
		Input:      text,
		Emotion:    emotion,
		TrackCount: len(rec.Tracks),
		Degraded:   rec.Degraded,
	})

	log.Printf("✅ MOOD FLOW: %s → %d tracks (degraded=%t)", emotion, len(rec.Tracks), rec.Degraded)
	return &models.MoodResult{Emotion: emotion, Recommendation: rec}, nil
}

// HandleWeather answers a location request: resolve the weather, fetch
// tracks for the mapped emotion, and log the interaction.
func (c *Coordinator) HandleWeather(ctx context.Context, userID, location string, limit int) (*models.WeatherResult, error) {
	if strings.TrimSpace(location) == "" {
		return nil, errors.New("location is required")
	}

	transaction := sentry.StartTransaction(ctx, "coordinator.weather")
	defer transaction.Finish()

	reply, err := c.request(ctx, bus.AddrWeather, OpResolve, ResolveRequest{Location: location})
	if err != nil {
		transaction.SetTag("success", "false")
		return nil, fmt.Errorf("weather worker: %w", err)
	}
	weather, ok := reply.(models.WeatherMood)
	if !ok {
		return nil, fmt.Errorf("weather worker: unexpected reply %T", reply)
	}

	rec, err := c.tracksFor(ctx, weather.Emotion, limit)
	if err != nil {
		transaction.SetTag("success", "false")
		return nil, err
	}

	transaction.SetTag("success", "true")
	transaction.SetTag("condition", weather.Condition)
	transaction.SetTag("emotion", weather.Emotion)

	c.remember(userID, models.Interaction{
		Kind:       "weather",
		Input:      location,
		Emotion:    weather.Emotion,
		TrackCount: len(rec.Tracks),
		Degraded:   rec.Degraded,
	})

	log.Printf("✅ WEATHER FLOW: %s → %s → %s → %d tracks", weather.Location, weather.Condition, weather.Emotion, len(rec.Tracks))
	return &models.WeatherResult{Weather: weather, Recommendation: rec}, nil
}

// CreatePlaylist forwards a playlist request to the curator worker and logs
// the created playlist to the user's history.
func (c *Coordinator) CreatePlaylist(ctx context.Context, userID string, sess *recommend.SpotifySession, req recommend.PlaylistRequest) (*models.Playlist, error) {
	reply, err := c.request(ctx, bus.AddrCurator, OpCreatePlaylist, CreatePlaylistRequest{Session: sess, Request: req})
	if err != nil {
		return nil, fmt.Errorf("curator worker: %w", err)
	}
	playlist, ok := reply.(*models.Playlist)
	if !ok {
		return nil, fmt.Errorf("curator worker: unexpected reply %T", reply)
	}

	c.remember(userID, models.Interaction{
		Kind:        "playlist",
		Input:       playlist.Name,
		Emotion:     req.Emotion,
		TrackCount:  playlist.TracksCount,
		PlaylistURL: playlist.URL,
	})
	return playlist, nil
}

// History returns the user's recent interactions, newest first.
func (c *Coordinator) History(ctx context.Context, userID string) ([]models.Interaction, error) {
	reply, err := c.request(ctx, bus.AddrMemory, OpRecent, RecentRequest{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("memory worker: %w", err)
	}
	interactions, ok := reply.([]models.Interaction)
	if !ok {
		return nil, fmt.Errorf("memory worker: unexpected reply %T", reply)
	}
	return interactions, nil
}

// Handle routes a raw operation to its worker. The typed methods above are
// what the HTTP layer uses; Handle exists for callers that speak the bus
// protocol directly.
func (c *Coordinator) Handle(ctx context.Context, op string, payload any) (any, error) {
	addr, ok := workerForOp[op]
	if !ok {
		return nil, invalidOp(op)
	}
	return c.request(ctx, addr, op, payload)
}

func (c *Coordinator) request(ctx context.Context, to bus.Address, op string, payload any) (any, error) {
	return c.dispatcher.Request(ctx, bus.Envelope{
		From:    bus.AddrCoordinator,
		To:      to,
		Op:      op,
		Payload: payload,
	})
}

// tracksFor asks the curator worker for tracks matching the emotion.
func (c *Coordinator) tracksFor(ctx context.Context, emotion string, limit int) (models.Recommendation, error) {
	reply, err := c.request(ctx, bus.AddrCurator, OpSearch, TracksRequest{Emotion: emotion, Limit: limit})
	if err != nil {
		return models.Recommendation{}, fmt.Errorf("curator worker: %w", err)
	}
	rec, ok := reply.(models.Recommendation)
	if !ok {
		return models.Recommendation{}, fmt.Errorf("curator worker: unexpected reply %T", reply)
	}
	return rec, nil
}

// remember queues a history write without blocking the response.
func (c *Coordinator) remember(userID string, interaction models.Interaction) {
	if userID == "" {
		return
	}
	env := bus.Envelope{
		From:    bus.AddrCoordinator,
		To:      bus.AddrMemory,
		Op:      OpStore,
		Payload: StoreRequest{UserID: userID, Interaction: interaction},
	}
	if err := c.dispatcher.Send(env); err != nil {
		log.Printf("⚠️ Could not queue history write for %s: %v", userID, err)
	}
}

func (c *Coordinator) handleEmotion(ctx context.Context, env bus.Envelope) (any, error) {
	if env.Op != OpClassify {
		return nil, invalidOp(env.Op)
	}
	req, ok := env.Payload.(ClassifyRequest)
	if !ok {
		return nil, badPayload(env)
	}
	return c.service.Classify(ctx, req.Text)
}

func (c *Coordinator) handleWeather(ctx context.Context, env bus.Envelope) (any, error) {
	if env.Op != OpResolve {
		return nil, invalidOp(env.Op)
	}
	req, ok := env.Payload.(ResolveRequest)
	if !ok {
		return nil, badPayload(env)
	}
	return c.service.ResolveWeather(ctx, req.Location)
}

func (c *Coordinator) handleCurator(ctx context.Context, env bus.Envelope) (any, error) {
	switch env.Op {
	case OpSearch:
		req, ok := env.Payload.(TracksRequest)
		if !ok {
			return nil, badPayload(env)
		}
		return c.service.SearchByMood(ctx, req.Emotion, req.Limit)
	case OpRecommend:
		req, ok := env.Payload.(TracksRequest)
		if !ok {
			return nil, badPayload(env)
		}
		limit := req.Limit
		if limit <= 0 {
			limit = recommend.DefaultTrackLimit
		}
		return c.curator.Discover(ctx, req.Emotion, limit), nil
	case OpCreatePlaylist:
		req, ok := env.Payload.(CreatePlaylistRequest)
		if !ok {
			return nil, badPayload(env)
		}
		return c.service.CreatePlaylist(ctx, req.Session, req.Request)
	default:
		return nil, invalidOp(env.Op)
	}
}

func (c *Coordinator) handleMemory(ctx context.Context, env bus.Envelope) (any, error) {
	switch env.Op {
	case OpStore:
		req, ok := env.Payload.(StoreRequest)
		if !ok {
			return nil, badPayload(env)
		}
		return nil, c.memory.Store(ctx, req.UserID, req.Interaction)
	case OpRecent:
		req, ok := env.Payload.(RecentRequest)
		if !ok {
			return nil, badPayload(env)
		}
		return c.memory.Recent(ctx, req.UserID)
	default:
		return nil, invalidOp(env.Op)
	}
}

func invalidOp(op string) error {
	return fmt.Errorf("invalid operation %q", op)
}

func badPayload(env bus.Envelope) error {
	return fmt.Errorf("unexpected payload %T for operation %q", env.Payload, env.Op)
}
