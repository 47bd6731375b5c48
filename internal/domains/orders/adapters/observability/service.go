package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/belandja/commerce-api/internal/domains/orders/domain"
	"github.com/belandja/commerce-api/internal/domains/orders/ports"
)

const tracerName = "github.com/belandja/commerce-api/internal/domains/orders/adapters/observability/service"

// Service decorates the orders application port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// PlaceOrder runs the full placement sequence with instrumentation.
func (s *Service) PlaceOrder(ctx context.Context, input ports.PlaceOrderInput) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.PlaceOrder",
		attribute.String("order.owner", input.CreatedBy),
		attribute.Int("order.item_count", len(input.Items)),
	)
	defer span.End()

	s.logInfo(ctx, "placing order", slog.String("owner", input.CreatedBy), slog.Int("items", len(input.Items)))
	order, err := s.inner.PlaceOrder(ctx, input)
	if err != nil {
		s.metrics.recordRejected(ctx)
		return nil, s.handleError(ctx, span, err, "failed to place order", slog.String("owner", input.CreatedBy))
	}
	if order != nil {
		span.SetAttributes(attribute.String("order.id", order.ID))
		s.metrics.recordPlaced(ctx, len(order.Items))
		s.logInfo(ctx, "order placed",
			slog.String("order.id", order.ID),
			slog.String("owner", order.CreatedBy),
			slog.Float64("grand_total", order.GrandTotal),
		)
	}
	return order, nil
}

// History loads one page of the owner's order history.
func (s *Service) History(ctx context.Context, ownerID string, page, limit int) (*ports.HistoryPage, error) {
	ctx, span := s.startSpan(ctx, "Service.History",
		attribute.String("order.owner", ownerID),
		attribute.Int("page", page),
		attribute.Int("limit", limit),
	)
	defer span.End()

	s.logInfo(ctx, "loading order history", slog.String("owner", ownerID), slog.Int("page", page))
	result, err := s.inner.History(ctx, ownerID, page, limit)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order history", slog.String("owner", ownerID))
	}
	span.SetAttributes(attribute.Int64("order.result.total", result.Total))
	s.logInfo(ctx, "order history loaded", slog.String("owner", ownerID), slog.Int64("total", result.Total))
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	ordersPlaced   metric.Int64Counter
	ordersRejected metric.Int64Counter
	itemsOrdered   metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersPlaced, _ := m.Int64Counter("orders.service.placed", metric.WithDescription("Number of orders placed"))
	ordersRejected, _ := m.Int64Counter("orders.service.rejected", metric.WithDescription("Number of order placements rejected"))
	itemsOrdered, _ := m.Int64Counter("orders.service.items", metric.WithDescription("Number of order lines placed"))
	return serviceMetrics{
		ordersPlaced:   ordersPlaced,
		ordersRejected: ordersRejected,
		itemsOrdered:   itemsOrdered,
	}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, itemCount int) {
	addCounter(ctx, m.ordersPlaced, 1)
	addCounter(ctx, m.itemsOrdered, int64(itemCount))
}

func (m serviceMetrics) recordRejected(ctx context.Context) {
	addCounter(ctx, m.ordersRejected, 1)
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
