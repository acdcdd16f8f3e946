package workflow

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/videoclub/rental/internal/model"
	"github.com/videoclub/rental/internal/mq"
	"github.com/videoclub/rental/internal/service/domain"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AuditWorkflow consumes rental events and appends them to the rental log.
type AuditWorkflow struct {
	rentalService domain.RentalService
	logger        *zap.Logger
}

func NewAuditWorkflow(rentalService domain.RentalService, logger *zap.Logger) *AuditWorkflow {
	return &AuditWorkflow{
		rentalService: rentalService,
		logger:        logger,
	}
}

func (w *AuditWorkflow) Start(mqConn *amqp.Connection) error {
	if err := w.ConsumeRentalEvents(mqConn); err != nil {
		return err
	}
	return nil
}

func (w *AuditWorkflow) ConsumeRentalEvents(conn *amqp.Connection) error {
	ch, err := mq.NewChannel(conn)
	if err != nil {
		return err
	}

	msgs, err := ch.Consume(mq.RentalEventQueue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgs {
			if err := w.handleRentalEvent(msg); err != nil {
				w.logger.Error("failed to handle rental event", zap.Error(err))
			}
		}
	}()

	return nil
}

func (w *AuditWorkflow) handleRentalEvent(msg amqp.Delivery) error {
	var message mq.RentalEventMessage
	if err := json.Unmarshal(msg.Body, &message); err != nil {
		msg.Nack(false, false)
		return err
	}

	if err := w.rentalService.RecordRental(message.CopyID, message.MovieID, message.UserID,
		model.RentalAction(message.Action)); err != nil {
		msg.Nack(false, true)
		return err
	}

	msg.Ack(false)

	return nil
}
