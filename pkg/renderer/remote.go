package renderer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"read-frame/pkg/logging"
)

const writeTimeout = 5 * time.Second

// Message is the wire format sent to a remote rendering surface.
type Message struct {
	Op      string  `json:"op"` // "setAttribute" or "setStyles"
	BookKey string  `json:"bookKey"`
	Name    string  `json:"name,omitempty"`
	Value   string  `json:"value,omitempty"`
	CSS     string  `json:"css,omitempty"`
	Styles  *Styles `json:"styles,omitempty"`
}

// RemoteHandle forwards renderer calls over a websocket to a rendering
// surface living in another process, such as a browser web view.
type RemoteHandle struct {
	bookKey string
	conn    *websocket.Conn
	mu      sync.Mutex
}

// DialRemote connects to the rendering surface at url.
func DialRemote(ctx context.Context, url, bookKey string) (*RemoteHandle, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial remote renderer %s: %w", url, err)
	}
	return &RemoteHandle{bookKey: bookKey, conn: conn}, nil
}

// SetAttribute sends a setAttribute message. Failures are logged and dropped.
func (h *RemoteHandle) SetAttribute(name, value string) {
	h.send(Message{Op: "setAttribute", BookKey: h.bookKey, Name: name, Value: value})
}

// SetStyles sends the styles along with their CSS rendering.
func (h *RemoteHandle) SetStyles(styles Styles) {
	h.send(Message{Op: "setStyles", BookKey: h.bookKey, CSS: styles.CSS(), Styles: &styles})
}

func (h *RemoteHandle) send(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := h.conn.WriteJSON(msg); err != nil {
		logging.Logger().Warn("remote renderer send failed",
			zap.String("book", h.bookKey), zap.String("op", msg.Op), zap.Error(err))
	}
}

// Close sends a close frame and closes the connection.
func (h *RemoteHandle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	deadline := time.Now().Add(writeTimeout)
	_ = h.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	return h.conn.Close()
}
