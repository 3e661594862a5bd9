package kicad

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danmuck/kicadctl/internal/kiapi"
	"github.com/danmuck/kicadctl/internal/protocol"
	"github.com/danmuck/kicadctl/internal/protocol/session"
	"github.com/danmuck/kicadctl/internal/transport"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/danmuck/kicadctl/internal/kicad"

// Call outcome labels used when no reply status is available.
const (
	outcomeCanceled       = "canceled"
	outcomeTransportError = "transport_error"
	outcomeProtocolError  = "protocol_error"
)

// CallRecorder observes one finished exchange: the short command name, the
// reply status or outcome label, and the round trip time.
type CallRecorder func(command, status string, duration time.Duration)

type Option func(*Client)

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTracer replaces the tracer taken from the global otel provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Client) {
		c.tracer = tracer
	}
}

func WithCallRecorder(record CallRecorder) Option {
	return func(c *Client) {
		c.record = record
	}
}

// Client talks to one KiCad instance over one transport. It is not safe for
// concurrent use.
type Client struct {
	addr      string
	transport transport.Transport
	session   *session.Session
	version   KiCadVersionInfo

	logger zerolog.Logger
	tracer trace.Tracer
	record CallRecorder
}

// Connect dials cfg.SocketPath and performs the version handshake.
func Connect(ctx context.Context, cfg ConnectionConfig, opts ...Option) (*Client, error) {
	cfg = cfg.withDefaults()
	t, err := transport.Dial(cfg.SocketPath)
	if err != nil {
		return nil, err
	}
	return ConnectWith(ctx, t, cfg, opts...)
}

// ConnectWith performs the version handshake over an already open
// transport. On handshake failure t is closed and no client is returned.
func ConnectWith(ctx context.Context, t transport.Transport, cfg ConnectionConfig, opts ...Option) (*Client, error) {
	cfg = cfg.withDefaults()
	c := newClient(t, cfg, opts...)
	version, err := c.GetVersion(ctx)
	if err != nil {
		if cerr := t.Close(); cerr != nil {
			c.logger.Debug().Err(cerr).Msg("kicad.Client.Connect close after failed handshake")
		}
		return nil, fmt.Errorf("kicad: handshake with %s: %w", cfg.SocketPath, err)
	}
	c.version = version
	c.logger.Info().
		Str("socket", cfg.SocketPath).
		Str("client_name", cfg.ClientName).
		Str("version", version.Full).
		Msg("kicad.Client.Connect connected")
	return c, nil
}

func newClient(t transport.Transport, cfg ConnectionConfig, opts ...Option) *Client {
	c := &Client{
		addr:      cfg.SocketPath,
		transport: t,
		session:   session.New(cfg.ClientName, cfg.Token),
		logger:    zerolog.Nop(),
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Version is the version reported during the connect handshake.
func (c *Client) Version() KiCadVersionInfo {
	return c.version
}

// Token is the session token issued by KiCad, or "" before the first
// successful reply.
func (c *Client) Token() string {
	return c.session.Token()
}

func (c *Client) ClientName() string {
	return c.session.ClientName()
}

func (c *Client) Close() error {
	return c.transport.Close()
}

func (c *Client) GetVersion(ctx context.Context) (KiCadVersionInfo, error) {
	var resp kiapi.GetVersionResponse
	if err := c.call(ctx, &kiapi.GetVersion{}, &resp); err != nil {
		return KiCadVersionInfo{}, err
	}
	return versionInfo(resp.Version), nil
}

// Ping checks that KiCad is still answering.
func (c *Client) Ping(ctx context.Context) error {
	return c.call(ctx, &kiapi.Ping{}, &kiapi.Empty{})
}

// GetOpenDocuments lists open documents of kind, in KiCad's order. An empty
// list is not an error.
func (c *Client) GetOpenDocuments(ctx context.Context, kind kiapi.DocumentType) ([]*kiapi.DocumentSpecifier, error) {
	var resp kiapi.GetOpenDocumentsResponse
	if err := c.call(ctx, &kiapi.GetOpenDocuments{Type: kind}, &resp); err != nil {
		return nil, err
	}
	return resp.Documents, nil
}

// GetBoard describes the first open board.
func (c *Client) GetBoard(ctx context.Context) (BoardData, error) {
	doc, err := c.firstBoard(ctx)
	if err != nil {
		return BoardData{}, err
	}
	board := BoardData{
		Name:     documentName(doc),
		Document: doc,
	}
	if doc.Project != nil {
		name := doc.Project.Name
		board.ProjectName = &name
	}
	return board, nil
}

// GetItems fetches items of the given types from doc.
func (c *Client) GetItems(ctx context.Context, doc *kiapi.DocumentSpecifier, types ...kiapi.ObjectType) (*kiapi.GetItemsResponse, error) {
	req := &kiapi.GetItems{
		Header: &kiapi.ItemHeader{Document: doc},
		Types:  types,
	}
	var resp kiapi.GetItemsResponse
	if err := c.call(ctx, req, &resp); err != nil {
		return nil, err
	}
	if resp.Status != kiapi.ItemRequestOK && resp.Status != kiapi.ItemRequestUnknown {
		return nil, &ItemRequestError{Status: resp.Status}
	}
	return &resp, nil
}

// GetFootprints decodes every footprint on the first open board. Items that
// are not footprint instances are skipped and counted.
func (c *Client) GetFootprints(ctx context.Context) (FootprintList, error) {
	doc, err := c.firstBoard(ctx)
	if err != nil {
		return FootprintList{}, err
	}
	resp, err := c.GetItems(ctx, doc, kiapi.ObjectTypePCBFootprint)
	if err != nil {
		return FootprintList{}, err
	}

	out := FootprintList{Footprints: make([]FootprintData, 0, len(resp.Items))}
	for i, item := range resp.Items {
		var fp kiapi.FootprintInstance
		if err := protocol.Unpack(item, &fp); err != nil {
			out.Skipped++
			c.logger.Debug().Int("index", i).Err(err).Msg("kicad.Client.GetFootprints skipped item")
			continue
		}
		out.Footprints = append(out.Footprints, DecodeFootprint(&fp))
	}
	c.logger.Debug().
		Int("footprints", len(out.Footprints)).
		Int("skipped", out.Skipped).
		Msg("kicad.Client.GetFootprints")
	return out, nil
}

func (c *Client) firstBoard(ctx context.Context) (*kiapi.DocumentSpecifier, error) {
	docs, err := c.GetOpenDocuments(ctx, kiapi.DocTypePCB)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNoBoardOpen
	}
	return docs[0], nil
}

func documentName(doc *kiapi.DocumentSpecifier) string {
	switch id := doc.Identifier.(type) {
	case kiapi.BoardFilename:
		return string(id)
	case *kiapi.LibraryIdentifier:
		return id.String()
	case *kiapi.SheetPath:
		return id.String()
	default:
		return ""
	}
}

// call performs one exchange: req is sent with the session header and the
// reply payload is decoded into resp.
func (c *Client) call(ctx context.Context, req, resp kiapi.Message) error {
	command := commandName(req)
	ctx, span := c.tracer.Start(ctx, "kicad."+command,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("kicad.command", req.TypeName()),
			attribute.String("kicad.socket", c.addr),
			attribute.String("kicad.client_name", c.session.ClientName()),
		),
	)
	defer span.End()

	start := time.Now()
	status, err := c.exchange(ctx, req, resp)
	elapsed := time.Since(start)
	if c.record != nil {
		c.record(command, status, elapsed)
	}
	span.SetAttributes(attribute.String("kicad.status", status))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Debug().
			Str("command", command).
			Str("status", status).
			Dur("elapsed", elapsed).
			Err(err).
			Msg("kicad.Client.call failed")
		return err
	}
	c.logger.Trace().
		Str("command", command).
		Dur("elapsed", elapsed).
		Msg("kicad.Client.call")
	return nil
}

func (c *Client) exchange(ctx context.Context, req, resp kiapi.Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return outcomeCanceled, err
	}

	b, err := protocol.EncodeRequest(c.session.Header(), req)
	if err != nil {
		return outcomeProtocolError, fmt.Errorf("%w: encode %s: %w", ErrProtocol, req.TypeName(), err)
	}
	if err := c.transport.Send(b); err != nil {
		return outcomeTransportError, err
	}
	raw, err := c.transport.Recv()
	if err != nil {
		return outcomeTransportError, err
	}

	env, err := protocol.DecodeResponse(raw)
	if err != nil {
		return outcomeProtocolError, err
	}
	status := env.GetStatus().GetStatus()
	if status != kiapi.StatusOK {
		return status.String(), &APIError{Code: status, Message: env.GetStatus().GetErrorMessage()}
	}

	if c.session.Observe(status, env.GetHeader().GetKicadToken()) {
		c.logger.Debug().Msg("kicad.Client.exchange session token captured")
	}
	if err := protocol.Unpack(env.GetMessage(), resp); err != nil {
		return outcomeProtocolError, fmt.Errorf("%w: %s reply: %w", ErrProtocol, commandName(req), err)
	}
	return status.String(), nil
}

// commandName is the unqualified schema name, e.g. GetVersion.
func commandName(m kiapi.Message) string {
	name := m.TypeName()
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// IsUnavailable reports whether err means KiCad could not be reached or is
// not ready to serve, as opposed to a rejected or malformed exchange.
func IsUnavailable(err error) bool {
	if errors.Is(err, ErrTransport) || errors.Is(err, ErrNoBoardOpen) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == kiapi.StatusNotReady || apiErr.Code == kiapi.StatusBusy
	}
	return false
}
