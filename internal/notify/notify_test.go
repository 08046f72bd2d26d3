package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"go.uber.org/zap"
)

type fakeConn struct {
	mu       sync.Mutex
	messages [][]byte
	failing  bool
	stalled  bool
	deadline time.Time
	closed   bool
}

func (c *fakeConn) SetWriteDeadline(t time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deadline = t
	return nil
}

// WriteMessage on a stalled conn blocks until the write deadline, like a
// socket whose send buffer never drains.
func (c *fakeConn) WriteMessage(_ int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stalled {
		if c.deadline.IsZero() {
			return errors.New("write without deadline")
		}
		time.Sleep(time.Until(c.deadline))
		return errors.New("i/o timeout")
	}
	if c.failing {
		return errors.New("broken pipe")
	}
	c.messages = append(c.messages, data)
	return nil
}

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

func TestHub_SendToEveryStream(t *testing.T) {
	hub := NewHub(zap.NewNop())
	a, b := &fakeConn{}, &fakeConn{}
	hub.Register(&Client{CaregiverID: "cg-1", Conn: a})
	hub.Register(&Client{CaregiverID: "cg-1", Conn: b})
	hub.Register(&Client{CaregiverID: "cg-2", Conn: &fakeConn{}})

	err := hub.Send(context.Background(), Recipient{CaregiverID: "cg-1"}, Message{Event: "emergency", Body: "help"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(a.messages) != 1 || len(b.messages) != 1 {
		t.Fatalf("expected one message per stream, got %d and %d", len(a.messages), len(b.messages))
	}
	var got Message
	if err := json.Unmarshal(a.messages[0], &got); err != nil {
		t.Fatal(err)
	}
	if got.Event != "emergency" || got.Body != "help" {
		t.Errorf("unexpected payload %+v", got)
	}
}

func TestHub_NotConnected(t *testing.T) {
	hub := NewHub(zap.NewNop())
	err := hub.Send(context.Background(), Recipient{CaregiverID: "nobody"}, Message{})
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("expected ErrNotConnected, got %v", err)
	}
}

func TestHub_DropsBrokenStream(t *testing.T) {
	hub := NewHub(zap.NewNop())
	broken := &fakeConn{failing: true}
	hub.Register(&Client{CaregiverID: "cg-1", Conn: broken})

	err := hub.Send(context.Background(), Recipient{CaregiverID: "cg-1"}, Message{})
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("expected ErrNotConnected, got %v", err)
	}
	if hub.Connected("cg-1") != 0 {
		t.Error("broken stream should be unregistered")
	}
	if !broken.closed {
		t.Error("broken stream should be closed")
	}
}

func TestHub_StalledStreamTimesOut(t *testing.T) {
	hub := NewHub(zap.NewNop())
	stalled := &fakeConn{stalled: true}
	healthy := &fakeConn{}
	hub.Register(&Client{CaregiverID: "cg-1", Conn: stalled, WriteWait: 50 * time.Millisecond})
	hub.Register(&Client{CaregiverID: "cg-1", Conn: healthy})

	done := make(chan error, 1)
	go func() {
		done <- hub.Send(context.Background(), Recipient{CaregiverID: "cg-1"}, Message{Event: "emergency"})
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Send: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Send blocked on a stalled stream")
	}

	if hub.Connected("cg-1") != 1 {
		t.Errorf("expected only the healthy stream to remain, got %d", hub.Connected("cg-1"))
	}
	if !stalled.closed {
		t.Error("stalled stream should be closed")
	}
	if len(healthy.messages) != 1 {
		t.Errorf("healthy stream should still get the message, got %d", len(healthy.messages))
	}
}

func TestClient_WriteSetsDeadline(t *testing.T) {
	conn := &fakeConn{}
	c := &Client{CaregiverID: "cg-1", Conn: conn}

	before := time.Now()
	if err := c.Ping(); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if conn.deadline.Before(before.Add(DefaultWriteWait)) {
		t.Errorf("expected deadline at least %s ahead, got %s", DefaultWriteWait, conn.deadline.Sub(before))
	}
}

type fakeSNS struct {
	in  *sns.PublishInput
	err error
}

func (f *fakeSNS) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.in = in
	return &sns.PublishOutput{}, f.err
}

func TestSMS_Send(t *testing.T) {
	client := &fakeSNS{}
	ch := NewSMS(client, "SeniorCare")

	err := ch.Send(context.Background(), Recipient{Phone: "+351912345678"}, Message{Body: "Maria pressed the help button"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if aws.ToString(client.in.PhoneNumber) != "+351912345678" {
		t.Errorf("unexpected phone %q", aws.ToString(client.in.PhoneNumber))
	}
	if _, ok := client.in.MessageAttributes["AWS.SNS.SMS.SenderID"]; !ok {
		t.Error("expected sender id attribute")
	}
}

func TestSMS_NoPhone(t *testing.T) {
	ch := NewSMS(&fakeSNS{}, "")
	if err := ch.Send(context.Background(), Recipient{}, Message{}); !errors.Is(err, ErrNoAddress) {
		t.Errorf("expected ErrNoAddress, got %v", err)
	}
}

type fakeSES struct {
	in  *ses.SendEmailInput
	err error
}

func (f *fakeSES) SendEmail(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.in = in
	return &ses.SendEmailOutput{}, f.err
}

func TestEmail_Send(t *testing.T) {
	client := &fakeSES{}
	ch := NewEmail(client, "alerts@seniorcare.test")

	err := ch.Send(context.Background(), Recipient{Email: "ana@example.com"}, Message{Subject: "Emergency", Body: "help"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got := client.in.Destination.ToAddresses; len(got) != 1 || got[0] != "ana@example.com" {
		t.Errorf("unexpected destination %v", got)
	}
	if aws.ToString(client.in.Source) != "alerts@seniorcare.test" {
		t.Errorf("unexpected source %q", aws.ToString(client.in.Source))
	}
}

func TestEmail_WrapsError(t *testing.T) {
	ch := NewEmail(&fakeSES{err: errors.New("throttled")}, "a@b.c")
	err := ch.Send(context.Background(), Recipient{Email: "x@y.z"}, Message{})
	if err == nil {
		t.Fatal("expected error")
	}
}
