// Package jobs defines the background jobs processed by pkg/queue.
package jobs

import (
	"fmt"

	"github.com/aamirkhan2478/elite-market-backend/app/models"
	"github.com/aamirkhan2478/elite-market-backend/pkg/mail"
	"github.com/aamirkhan2478/elite-market-backend/pkg/queue"
)

// OrderConfirmationJob emails the buyer after an order is placed.
// Fields are exported so the queue can round-trip the job through JSON.
type OrderConfirmationJob struct {
	OrderID    string  `json:"orderId"`
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	TotalPrice float64 `json:"totalPrice"`
}

// NewOrderConfirmation builds the job from a freshly placed order.
func NewOrderConfirmation(order *models.Order, buyer *models.User) OrderConfirmationJob {
	return OrderConfirmationJob{
		OrderID:    order.ID.Hex(),
		Email:      buyer.Email,
		Name:       buyer.Name,
		TotalPrice: order.TotalPrice,
	}
}

// Handle sends the confirmation email.
func (j OrderConfirmationJob) Handle() error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your order <strong>%s</strong> has been placed. "+
			"Order total: <strong>%.2f</strong>.</p><p>We will let you know when it ships.</p>",
		j.Name, j.OrderID, j.TotalPrice,
	)
	return mail.To(j.Email).
		Subject("Order placed successfully").
		Body(body).
		Send()
}

// Register makes all job types known to the queue. Call once at boot.
func Register() {
	queue.Register("jobs.OrderConfirmationJob", func() queue.Job {
		return &OrderConfirmationJob{}
	})
}
