// Package messaging 将领域事件发布到 Kafka
package messaging

import (
	"context"
	"time"

	"github.com/wyfcoding/optionpricing/internal/pricing/domain"
	"github.com/wyfcoding/optionpricing/pkg/mq"
)

// KafkaEventPublisher 实现 domain.EventPublisher，事件写入统一主题
// 消息 key 为合约符号，保证同一合约的事件有序
type KafkaEventPublisher struct {
	producer *mq.KafkaProducer
	topic    string
	timeout  time.Duration
}

// NewKafkaEventPublisher 创建 Kafka 事件发布者
func NewKafkaEventPublisher(producer *mq.KafkaProducer, topic string) *KafkaEventPublisher {
	return &KafkaEventPublisher{
		producer: producer,
		topic:    topic,
		timeout:  5 * time.Second,
	}
}

// envelope 事件信封，携带事件类型供消费方路由
type envelope struct {
	EventType string `json:"event_type"`
	Payload   any    `json:"payload"`
}

// PublishOptionPriced 发布期权定价完成事件
func (p *KafkaEventPublisher) PublishOptionPriced(event domain.OptionPricedEvent) error {
	return p.publish(domain.OptionPricedEventType, event.Symbol, event)
}

// PublishGreeksCalculated 发布希腊字母计算完成事件
func (p *KafkaEventPublisher) PublishGreeksCalculated(event domain.GreeksCalculatedEvent) error {
	return p.publish(domain.GreeksCalculatedEventType, event.Symbol, event)
}

// PublishPricingError 发布定价错误事件
func (p *KafkaEventPublisher) PublishPricingError(event domain.PricingErrorEvent) error {
	return p.publish(domain.PricingErrorEventType, event.Symbol, event)
}

// PublishBatchPricingCompleted 发布批量定价完成事件
func (p *KafkaEventPublisher) PublishBatchPricingCompleted(event domain.BatchPricingCompletedEvent) error {
	return p.publish(domain.BatchPricingCompletedEventType, event.BatchID, event)
}

func (p *KafkaEventPublisher) publish(eventType, key string, payload any) error {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	return p.producer.SendMessage(ctx, p.topic, key, envelope{
		EventType: eventType,
		Payload:   payload,
	})
}
