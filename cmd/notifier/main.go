// notifier 借阅事件通知进程
// 订阅borrow.created事件,独立于API进程部署,
// 催还提醒等慢操作在这里做,不阻塞借阅主流程。
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	appborrow "github.com/xiebiao/library/internal/application/borrow"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/pkg/mq"
)

// queueName 通知队列,与API进程的Exchange绑定
const queueName = "borrow.notification"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	if !cfg.MQ.Enabled {
		log.Fatal("MQ未启用(mq.enabled=false),通知进程无事可做")
	}

	consumer, err := mq.NewConsumer(
		cfg.MQ.URL,
		cfg.MQ.Exchange,
		queueName,
		[]string{"borrow.*"},
	)
	if err != nil {
		log.Fatalf("初始化消费者失败: %v", err)
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("✓ 通知进程已启动: Queue=%s\n", queueName)

	err = consumer.Consume(ctx, func(routingKey string, body []byte) error {
		switch routingKey {
		case appborrow.EventBorrowCreated:
			return handleBorrowCreated(body)
		default:
			// 未知事件直接确认,避免反复重新入队
			log.Printf("忽略未知事件: RoutingKey=%s", routingKey)
			return nil
		}
	})
	if err != nil {
		log.Fatalf("消费失败: %v", err)
	}
}

// handleBorrowCreated 处理借阅成功事件
// TODO: 接入邮件/短信通道,当前只记录催还提醒日志
func handleBorrowCreated(body []byte) error {
	var event appborrow.BorrowCreatedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("解析借阅事件失败: %w", err)
	}

	log.Printf("借阅提醒: 《%s》x%d, 记录ID=%d, 应还日期=%s",
		event.Title, event.Quantity, event.RecordID,
		event.DueDate.Format("2006-01-02"))
	return nil
}
