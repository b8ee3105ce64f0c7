package queue

import (
	"encoding/json"
	"log"

	"github.com/streadway/amqp"
)

// DeliveryQueueName is the RabbitMQ queue consumed by cmd/worker.
const DeliveryQueueName = "campaign_deliveries"

// AMQPDeliveryPublisher publishes delivery jobs to RabbitMQ. Both the
// HTTP launch endpoint and the scheduled launch scan go through this,
// so every dispatched target reaches the delivery worker.
type AMQPDeliveryPublisher struct {
	URL string
}

// PublishDeliveries opens a channel and publishes one job per lead.
func (p *AMQPDeliveryPublisher) PublishDeliveries(campaignID int, leadIDs []int) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		return err
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		DeliveryQueueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	for _, leadID := range leadIDs {
		body, _ := json.Marshal(map[string]int{"campaign_id": campaignID, "lead_id": leadID})
		err = ch.Publish(
			"",
			q.Name,
			false,
			false,
			amqp.Publishing{
				ContentType: "application/json",
				Body:        body,
			},
		)
		if err != nil {
			log.Println("Failed to publish delivery job for lead", leadID, ":", err)
		}
	}

	return nil
}
