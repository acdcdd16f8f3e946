package workflow

import (
	"go.uber.org/zap"

	"github.com/videoclub/rental/internal/cache"
	"github.com/videoclub/rental/internal/model"
	"github.com/videoclub/rental/internal/mq"
	"github.com/videoclub/rental/internal/service/domain"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RentalWorkflow drives a full rent or return: the transactional state change
// through the rental service, then the availability counter and the audit
// trail. With no MQ connection the audit entry is written synchronously.
type RentalWorkflow struct {
	RentalService domain.RentalService
	Cache         *cache.Cache
	MQConn        *amqp.Connection
	Logger        *zap.Logger
}

func NewRentalWorkflow(rentalService domain.RentalService, cache *cache.Cache, mqConn *amqp.Connection, logger *zap.Logger) *RentalWorkflow {
	return &RentalWorkflow{
		RentalService: rentalService,
		Cache:         cache,
		MQConn:        mqConn,
		Logger:        logger,
	}
}

func (w *RentalWorkflow) Rent(userID, movieID uint) (*model.Copy, error) {
	c, err := w.RentalService.AssignCopy(userID, movieID)
	if err != nil {
		return nil, err
	}

	if w.Cache != nil {
		if err := w.Cache.DecrAvailability(c.MovieID); err != nil {
			w.Logger.Warn("failed to update availability counter", zap.Error(err))
		}
	}

	if err := w.record(c, userID, model.RentalActionRented); err != nil {
		w.Logger.Error("failed to record rental", zap.Error(err))
	}

	return c, nil
}

func (w *RentalWorkflow) Return(userID uint) (*model.Copy, error) {
	c, err := w.RentalService.ReleaseCopy(userID)
	if err != nil {
		return nil, err
	}

	if w.Cache != nil {
		if err := w.Cache.IncrAvailability(c.MovieID); err != nil {
			w.Logger.Warn("failed to update availability counter", zap.Error(err))
		}
	}

	if err := w.record(c, userID, model.RentalActionReturned); err != nil {
		w.Logger.Error("failed to record return", zap.Error(err))
	}

	return c, nil
}

func (w *RentalWorkflow) record(c *model.Copy, userID uint, action model.RentalAction) error {
	if w.MQConn == nil {
		return w.RentalService.RecordRental(c.ID, c.MovieID, userID, action)
	}

	ch, err := mq.NewChannel(w.MQConn)
	if err != nil {
		return err
	}
	defer ch.Close()

	return mq.SendImmediateMessage(ch, mq.RentalEventQueue,
		mq.RentalEventMessage{
			CopyID:  c.ID,
			MovieID: c.MovieID,
			UserID:  userID,
			Action:  string(action),
		})
}
