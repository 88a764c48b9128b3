package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fluxpay/dummy-connector/internal/aws"
	"github.com/fluxpay/dummy-connector/internal/kvstore"
	"github.com/fluxpay/dummy-connector/internal/logger"
	"github.com/fluxpay/dummy-connector/internal/payments"
	"github.com/fluxpay/dummy-connector/internal/simulate"
	"github.com/fluxpay/dummy-connector/internal/validation"
)

// HandlerConfig groups dependencies for the payment routes.
type HandlerConfig struct {
	DynamoDBClient aws.DynamoDBAPI
	SQSClient      aws.SQSAPI
	KVTable        string
	QueueURL       string
	BaseURL        string
	PaymentTTL     time.Duration
	Delay          time.Duration
	Tolerance      time.Duration
}

// RegisterPaymentRoutes registers the simulator's payment API.
func RegisterPaymentRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()
	store := kvstore.NewStore(cfg.DynamoDBClient, cfg.KVTable)
	locator := payments.NewLocator(store)
	publisher := aws.NewPublisher(cfg.SQSClient, cfg.QueueURL)
	log := logger.L()

	r.POST("/payments", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.CreatePaymentRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			// BindAndValidate already wrote a 400
			return
		}

		attempt := payments.PaymentAttempt{
			AttemptID: "dummy_att_" + uuid.NewString(),
			PaymentID: "dummy_pay_" + uuid.NewString(),
			Request:   toPaymentRequest(req),
		}

		// real processors take a moment to answer
		simulate.Sleep(cfg.Delay, cfg.Tolerance)

		redirectURL := payments.RedirectURL(cfg.BaseURL, attempt.AttemptID)
		record, err := payments.BuildRecord(attempt, redirectURL)
		if err != nil {
			writeDomainError(c, err)
			return
		}

		if err := locator.StoreNewRecord(ctx, record, cfg.PaymentTTL); err != nil {
			writeDomainError(c, err)
			return
		}
		if err := locator.IndexAttempt(ctx, attempt.AttemptID, attempt.PaymentID, cfg.PaymentTTL); err != nil {
			writeDomainError(c, err)
			return
		}

		publishPaymentEvent(c, publisher, record)

		log.Info("payment simulated",
			"payment_id", record.PaymentID,
			"status", string(record.Status),
			"method", string(record.MethodType))
		c.JSON(http.StatusCreated, record)
	})

	r.GET("/payments/:payment_id", func(c *gin.Context) {
		record, err := locator.FindByPaymentID(c.Request.Context(), c.Param("payment_id"))
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, record)
	})

	r.GET("/payments/attempt/:attempt_id", func(c *gin.Context) {
		record, err := locator.FindByAttemptID(c.Request.Context(), c.Param("attempt_id"))
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, record)
	})

	// Data behind the hosted challenge page. The page itself renders
	// elsewhere; this only says what to show, or that the link expired.
	r.GET("/dummy-connector/authorize/:attempt_id", func(c *gin.Context) {
		record, err := locator.FindByAttemptID(c.Request.Context(), c.Param("attempt_id"))
		if err != nil || record.Status != payments.StatusProcessing {
			c.JSON(http.StatusNotFound, gin.H{"error": "link_invalid_or_expired"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"payment_id":          record.PaymentID,
			"amount":              record.Amount,
			"currency":            record.Currency,
			"payment_method_type": record.MethodType,
			"connector":           record.Connector,
			"return_url":          record.ReturnURL,
		})
	})

	// Outcome of the challenge: confirm=true completes the payment,
	// confirm=false rejects it. Only processing records can resolve.
	r.GET("/dummy-connector/complete/:attempt_id", func(c *gin.Context) {
		ctx := c.Request.Context()

		confirm := c.Query("confirm") == "true"
		record, err := locator.FindByAttemptID(ctx, c.Param("attempt_id"))
		if err != nil {
			writeDomainError(c, err)
			return
		}
		if record.Status != payments.StatusProcessing {
			c.JSON(http.StatusConflict, gin.H{"error": "payment_already_resolved", "status": record.Status})
			return
		}

		if confirm {
			record.Status = payments.StatusSucceeded
		} else {
			record.Status = payments.StatusFailed
		}
		record.NextAction = nil

		if err := locator.StoreNewRecord(ctx, record, cfg.PaymentTTL); err != nil {
			writeDomainError(c, err)
			return
		}

		publishPaymentEvent(c, publisher, record)

		log.Info("payment challenge resolved",
			"payment_id", record.PaymentID,
			"status", string(record.Status))

		if record.ReturnURL != "" {
			c.Redirect(http.StatusFound, fmt.Sprintf("%s?payment_id=%s&status=%s",
				record.ReturnURL, record.PaymentID, record.Status))
			return
		}
		c.JSON(http.StatusOK, record)
	})
}

func toPaymentRequest(req validation.CreatePaymentRequest) payments.PaymentRequest {
	method := payments.MethodData{}
	switch {
	case req.Card != nil:
		method.Card = &payments.Card{
			Number:   payments.CardNumber(req.Card.Number),
			ExpMonth: req.Card.ExpMonth,
			ExpYear:  req.Card.ExpYear,
			CVC:      req.Card.CVC,
		}
	case req.Wallet != nil:
		method.Wallet = &payments.Wallet{Provider: req.Wallet.Provider}
	case req.PayLater != nil:
		method.PayLater = &payments.PayLater{Provider: req.PayLater.Provider}
	}
	return payments.PaymentRequest{
		Amount:    req.Amount,
		Currency:  req.Currency,
		Method:    method,
		ReturnURL: req.ReturnURL,
	}
}

// publishPaymentEvent announces a persisted record on the events queue.
// The record is already durable at this point, so a publish failure is
// logged but does not fail the request.
func publishPaymentEvent(c *gin.Context, publisher *aws.Publisher, record payments.PaymentRecord) {
	payload, _ := json.Marshal(map[string]string{
		"payment_id": record.PaymentID,
		"attempt_id": record.AttemptID,
		"status":     string(record.Status),
		"connector":  record.Connector,
	})
	attrs := map[string]string{
		"payment_id":     record.PaymentID,
		"correlation_id": c.GetHeader("X-Request-Id"),
	}
	if err := publisher.SendPaymentEvent(c.Request.Context(), string(payload), attrs); err != nil {
		logger.L().Warn("failed to publish payment event",
			"payment_id", record.PaymentID, "err", err)
	}
}

func writeDomainError(c *gin.Context, err error) {
	if reason, ok := payments.IsDeclined(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment_declined", "reason": reason})
		return
	}
	switch {
	case errors.Is(err, payments.ErrCardNotSupported):
		c.JSON(http.StatusBadRequest, gin.H{"error": "card_not_supported"})
	case errors.Is(err, payments.ErrPaymentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "payment_not_found"})
	case errors.Is(err, payments.ErrPaymentStoring):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "payment_storing_error"})
	case errors.Is(err, payments.ErrInternal):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
	}
}
