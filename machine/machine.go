package machine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"jukebox/buttons"
	"jukebox/config"
	"jukebox/input"
	"jukebox/library"
	"jukebox/playback"
)

// Machine represents the main application state
type Machine struct {
	config     *config.Config
	library    *library.Library
	player     *playback.Controller
	source     input.Source
	lines      []buttons.Line
	dispatcher *Dispatcher
	debouncer  *buttons.Debouncer
	logger     *slog.Logger
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	stopOnce   sync.Once
	errorChan  chan error

	openSource func(config.InputConfig) (input.Source, error)
	openLine   func(chip string, offset int) (buttons.Line, error)
	openSink   func(config.AudioConfig) (playback.Sink, error)
}

// Option customizes how a Machine acquires its devices
type Option func(*Machine)

// WithSourceOpener replaces the tag reader factory
func WithSourceOpener(open func(config.InputConfig) (input.Source, error)) Option {
	return func(m *Machine) { m.openSource = open }
}

// WithLineOpener replaces the GPIO line factory
func WithLineOpener(open func(chip string, offset int) (buttons.Line, error)) Option {
	return func(m *Machine) { m.openLine = open }
}

// WithSinkOpener replaces the audio output factory
func WithSinkOpener(open func(config.AudioConfig) (playback.Sink, error)) Option {
	return func(m *Machine) { m.openSink = open }
}

// New creates a new Machine instance
func New(cfg *config.Config, opts ...Option) *Machine {
	ctx, cancel := context.WithCancel(context.Background())

	m := &Machine{
		config:     cfg,
		logger:     slog.With("component", "machine"),
		ctx:        ctx,
		cancel:     cancel,
		errorChan:  make(chan error, 10),
		openSource: input.Open,
		openLine:   openGPIO,
		openSink:   playback.OpenSink,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func openGPIO(chip string, offset int) (buttons.Line, error) {
	l, err := buttons.OpenGPIO(chip, offset)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// Initialize sets up the machine components. Every error is fatal.
func (m *Machine) Initialize() error {
	m.logger.Info("Initializing machine...")

	m.library = library.New(m.config.Sounds.Path, m.config.Sounds.Tags)
	for _, entry := range m.library.Entries() {
		if !entry.Exists {
			m.logger.Warn("Mapped sound file is missing",
				slog.String("tag", entry.ID),
				slog.String("path", entry.Path))
		}
	}
	if m.config.Sounds.Preload {
		m.library.Preload()
	}

	sink, err := m.openSink(m.config.Audio)
	if err != nil {
		return fmt.Errorf("failed to open audio output: %w", err)
	}
	m.player, err = playback.NewController(m.library, sink, m.config.Audio.Volume)
	if err != nil {
		sink.Close()
		return err
	}

	m.source, err = m.openSource(m.config.Input)
	if err != nil {
		m.release()
		return fmt.Errorf("failed to open tag reader: %w", err)
	}
	m.dispatcher = NewDispatcher(m.source, m.player)

	if m.config.Buttons.Enabled {
		if err := m.initButtons(); err != nil {
			m.release()
			return err
		}
	}

	m.logger.Info("Machine initialized successfully",
		slog.Int("tags", m.library.Len()),
		slog.String("sounds", m.library.Root()),
		slog.String("backend", m.config.Audio.Backend),
		slog.Int("volume", m.player.Volume()))
	return nil
}

func (m *Machine) initButtons() error {
	cfg := m.config.Buttons

	raise, err := m.openLine(cfg.Chip, cfg.RaisePin)
	if err != nil {
		return fmt.Errorf("failed to open raise button: %w", err)
	}
	m.lines = append(m.lines, raise)

	lower, err := m.openLine(cfg.Chip, cfg.LowerPin)
	if err != nil {
		return fmt.Errorf("failed to open lower button: %w", err)
	}
	m.lines = append(m.lines, lower)

	m.debouncer = buttons.NewDebouncer(cfg.HoldOff, cfg.PollInterval,
		buttons.Button{Name: "raise", Line: raise, Action: func() { m.player.AdjustVolume(cfg.Step) }},
		buttons.Button{Name: "lower", Line: lower, Action: func() { m.player.AdjustVolume(-cfg.Step) }},
	)
	return nil
}

// Start begins all machine operations
func (m *Machine) Start() error {
	if m.dispatcher == nil {
		return fmt.Errorf("machine is not initialized")
	}
	m.logger.Info("Starting machine operations...")

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		if err := m.dispatcher.Run(m.ctx); err != nil {
			m.logger.Error("Tag reader failed", slog.Any("error", err))
			select {
			case m.errorChan <- err:
			default:
			}
		}
	}()

	if m.debouncer != nil {
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			m.debouncer.Run(m.ctx)
		}()
	}

	m.logger.Info("Jukebox started")
	return nil
}

// Stop gracefully shuts down the machine
func (m *Machine) Stop() error {
	m.stopOnce.Do(func() {
		m.logger.Info("Stopping machine...")

		// Cancel context to stop all loops
		m.cancel()

		// Closing the reader unblocks a pending fetch
		if m.source != nil {
			if err := m.source.Close(); err != nil {
				m.logger.Warn("Failed to close tag reader", slog.Any("error", err))
			}
			m.source = nil
		}

		m.wg.Wait()
		m.release()

		m.logger.Info("Machine stopped")
	})
	return nil
}

// release closes every device acquired so far
func (m *Machine) release() {
	if m.source != nil {
		m.source.Close()
		m.source = nil
	}
	for _, l := range m.lines {
		if err := l.Close(); err != nil {
			m.logger.Warn("Failed to release button line", slog.Any("error", err))
		}
	}
	m.lines = nil
	if m.player != nil {
		if err := m.player.Close(); err != nil {
			m.logger.Warn("Failed to close audio output", slog.Any("error", err))
		}
	}
}

// Player returns the playback controller
func (m *Machine) Player() *playback.Controller {
	return m.player
}

// Error returns the error channel for monitoring errors
func (m *Machine) Error() <-chan error {
	return m.errorChan
}
