package operator

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// scopeOpener opens a fresh storage scope per action.
type scopeOpener interface {
	Write(ctx context.Context) (*storage.Writer, error)
}

// Operator is the worker that processes items from the queue.
type Operator struct {
	storage scopeOpener
	queue   chan ActionItem
	log     logrus.FieldLogger
}

func NewOperator(s scopeOpener, queue chan ActionItem, log logrus.FieldLogger) *Operator {
	return &Operator{
		storage: s,
		queue:   queue,
		log:     log,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		o.processItem(item)
	}
}

func (o *Operator) processItem(item ActionItem) {
	item.response <- ActionItemResponse{err: o.perform(item)}
}

func (o *Operator) perform(item ActionItem) (err error) {
	writer, err := o.storage.Write(item.ctx)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			_ = writer.Rollback()
			o.log.WithFields(logrus.Fields{
				"action": fmt.Sprintf("%T", item.action),
				"panic":  r,
			}).Error("Operator.Perform.Panic")
			err = fmt.Errorf("action %T panicked: %v", item.action, r)
		}
	}()

	if err = item.action.Perform(item.ctx, writer); err != nil {
		if rbErr := writer.Rollback(); rbErr != nil {
			o.log.WithError(rbErr).WithField("action", fmt.Sprintf("%T", item.action)).Warn("Operator.Rollback.Error")
		}
		return err
	}

	return writer.Commit()
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
