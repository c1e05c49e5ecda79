package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	destination string
	body        []byte
	err         error
}

func (f *fakeSender) SendMessage(ctx context.Context, destination string, body []byte) error {
	f.destination = destination
	f.body = body
	return f.err
}

func TestProducer_PublishAttendanceRecorded(t *testing.T) {
	sender := &fakeSender{}
	p := NewProducer(sender, "http://localstack:4566/000000000000/attendance-events")

	event := AttendanceRecordedEvent{
		RecordID:   "65a0f0",
		Employee:   "alice",
		Type:       "check-in",
		Date:       "2024-01-05",
		Time:       "09:00",
		Office:     "BLR",
		OccurredAt: time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, p.PublishAttendanceRecorded(context.Background(), event))

	assert.Equal(t, "http://localstack:4566/000000000000/attendance-events", sender.destination)

	var got AttendanceRecordedEvent
	require.NoError(t, json.Unmarshal(sender.body, &got))
	assert.Equal(t, event, got)
}

func TestProducer_SendError(t *testing.T) {
	sendErr := errors.New("queue does not exist")
	p := NewProducer(&fakeSender{err: sendErr}, "q")

	err := p.PublishAttendanceRecorded(context.Background(), AttendanceRecordedEvent{Employee: "alice"})
	assert.ErrorIs(t, err, sendErr)
}

type fakeSQS struct {
	input *sqs.SendMessageInput
}

func (f *fakeSQS) SendMessage(ctx context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	return &sqs.SendMessageOutput{}, nil
}

func TestSQSSender_SendMessage(t *testing.T) {
	client := &fakeSQS{}
	p := NewSQSProducer(client, "queue-url")

	require.NoError(t, p.PublishAttendanceRecorded(context.Background(), AttendanceRecordedEvent{Employee: "bob"}))

	require.NotNil(t, client.input)
	assert.Equal(t, "queue-url", *client.input.QueueUrl)
	assert.Contains(t, *client.input.MessageBody, `"employee":"bob"`)
	require.Contains(t, client.input.MessageAttributes, "EventType")
	assert.Equal(t, "ATTENDANCE_RECORDED", *client.input.MessageAttributes["EventType"].StringValue)
}
