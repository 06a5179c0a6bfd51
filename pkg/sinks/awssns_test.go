package sinks

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/clearlist-hq/clearlist-verifier/internal/domain"
)

type stubSNSClient struct {
	input *sns.PublishInput
	err   error
}

func (s *stubSNSClient) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	s.input = params
	if s.err != nil {
		return nil, s.err
	}
	return &sns.PublishOutput{}, nil
}

func TestSNSSinkPublishesEvent(t *testing.T) {
	client := &stubSNSClient{}
	sink := &snsSink{
		id:       "topic",
		typ:      TypeSNS,
		topicARN: "arn:aws:sns:us-east-1:123:verdicts",
		client:   client,
		log:      noopLogger{},
	}

	evt := NewEvent("newsletter", "Weekly Newsletter", domain.Verdict{
		Operation:    domain.OpFree,
		EmailAddress: "bob@gmail.com",
		StatusCode:   200,
	})
	if err := sink.Publish(context.Background(), evt); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if client.input == nil {
		t.Fatalf("expected Publish to be called")
	}
	if got := *client.input.TopicArn; got != sink.topicARN {
		t.Fatalf("unexpected topic arn %s", got)
	}
	if attr := client.input.MessageAttributes["operation"]; attr.StringValue == nil || *attr.StringValue != domain.OpFree {
		t.Fatalf("expected operation attribute, got %+v", attr)
	}
}

func TestSNSSinkPropagatesPublishError(t *testing.T) {
	sink := &snsSink{
		id:       "topic",
		typ:      TypeSNS,
		topicARN: "arn:aws:sns:us-east-1:123:verdicts",
		client:   &stubSNSClient{err: errors.New("denied")},
		log:      noopLogger{},
	}
	if err := sink.Publish(context.Background(), Event{}); err == nil {
		t.Fatalf("expected publish error")
	}
}
