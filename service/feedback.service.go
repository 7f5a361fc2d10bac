package service

import (
	"context"
	"time"

	"dpofinder/db"
	"dpofinder/domain"
	"dpofinder/metric"
	"dpofinder/utils"

	log "github.com/sirupsen/logrus"
)

// FeedbackService fans user correction reports out to the persistence
// writer and the metrics recorder.
type FeedbackService struct {
	stream *utils.PubSubChannel[domain.Feedback]
}

func NewFeedbackService() *FeedbackService {
	return &FeedbackService{
		stream: utils.NewPubSubChannel[domain.Feedback](),
	}
}

// Start wires the pipeline subscribers. Must be called before Submit.
func (service *FeedbackService) Start() {
	persistChannel := service.stream.Subscribe()
	if db.ShareDbEnabled() {
		go func() {
			for report := range persistChannel {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				if err := db.InsertFeedback(ctx, report); err != nil {
					log.WithError(err).Warn("Failed to persist feedback")
				}
				cancel()
			}
		}()
	} else {
		// keep publishers from blocking when persistence is disabled
		utils.DumpChannel(persistChannel)
	}

	metricChannel := service.stream.Subscribe()
	go func() {
		for range metricChannel {
			metric.GetInstance().RecordFeedback()
		}
	}()
}

// Submit queues one report for the pipeline.
func (service *FeedbackService) Submit(report domain.Feedback) {
	if report.Timestamp == 0 {
		report.Timestamp = time.Now().Unix()
	}
	service.stream.Publish(report)
}

func (service *FeedbackService) Close() {
	service.stream.Close()
}
