package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const QueueReceipts = "jobs:receipts"

// Job is the generic envelope for async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ReceiptJobPayload identifies the sale whose receipt should be delivered.
type ReceiptJobPayload struct {
	SaleID   uuid.UUID `json:"sale_id"`
	TenantID uuid.UUID `json:"tenant_id"`
}

// Dispatcher enqueues async jobs into Redis lists. The worker pool dequeues
// them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueReceipt pushes a receipt delivery job to Redis.
func (d *Dispatcher) EnqueueReceipt(ctx context.Context, saleID, tenantID uuid.UUID) error {
	return d.enqueue(ctx, QueueReceipts, "receipt", ReceiptJobPayload{SaleID: saleID, TenantID: tenantID})
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(Job{Type: jobType, Payload: data})
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// Handler processes one decoded job payload.
type Handler interface {
	Process(ctx context.Context, raw json.RawMessage)
}

// StartWorkerPool launches numWorkers goroutines consuming the receipt
// queue. Each goroutine blocks on BRPOP, so an idle pool burns no CPU.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int, handlers map[string]Handler) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i, handlers)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, id int, handlers map[string]Handler) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop waits up to 5s, then loops to check ctx.
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueReceipts).Result()
			if err != nil {
				continue
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, result[1], handlers)
		}
	}
}

func processJob(ctx context.Context, raw string, handlers map[string]Handler) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal job")
		return
	}
	h, ok := handlers[job.Type]
	if !ok {
		log.Warn().Str("type", job.Type).Msg("no handler registered for job type")
		return
	}
	h.Process(ctx, job.Payload)
}
