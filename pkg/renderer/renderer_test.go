package renderer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"read-frame/pkg/viewsettings"
)

type recordingHandle struct {
	attrs map[string]string
}

func (r *recordingHandle) SetAttribute(name, value string) {
	r.attrs[name] = value
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()

	_, ok := reg.Get("book")
	assert.False(t, ok)

	h := &recordingHandle{attrs: map[string]string{}}
	reg.Register("book", h)
	got, ok := reg.Get("book")
	require.True(t, ok)
	assert.Same(t, h, got)

	reg.Unregister("book")
	_, ok = reg.Get("book")
	assert.False(t, ok)

	var nilReg *Registry
	_, ok = nilReg.Get("book")
	assert.False(t, ok)
}

func TestFlow(t *testing.T) {
	assert.Equal(t, "scrolled", Flow(true))
	assert.Equal(t, "paginated", Flow(false))
}

func TestGetStyles(t *testing.T) {
	s := viewsettings.Defaults()
	s.ZoomLevel = 150
	st := GetStyles(s)
	assert.Equal(t, 24, st.FontSize)
	assert.Equal(t, lightBackground, st.Background)
	assert.False(t, st.Invert)

	// Invert only takes effect with the dark theme.
	s.Invert = true
	assert.False(t, GetStyles(s).Invert)

	s.Theme = viewsettings.ThemeDark
	st = GetStyles(s)
	assert.True(t, st.Invert)
	assert.Equal(t, darkBackground, st.Background)

	css := st.CSS()
	assert.Contains(t, css, "font-size: 24px;")
	assert.Contains(t, css, "background-color: #222222;")
	assert.Contains(t, css, "filter: invert(100%);")
}

func TestRemoteHandle(t *testing.T) {
	received := make(chan Message, 4)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			var msg Message
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			received <- msg
		}
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	h, err := DialRemote(ctx, url, "walden")
	require.NoError(t, err)
	defer h.Close()

	h.SetAttribute(AttrFlow, FlowScrolled)
	h.SetStyles(GetStyles(viewsettings.Defaults()))

	first := <-received
	assert.Equal(t, Message{Op: "setAttribute", BookKey: "walden", Name: "flow", Value: "scrolled"}, first)

	second := <-received
	assert.Equal(t, "setStyles", second.Op)
	require.NotNil(t, second.Styles)
	assert.Equal(t, 16, second.Styles.FontSize)
	assert.Contains(t, second.CSS, "font-size: 16px;")
}

type styledHandle struct {
	recordingHandle
	styles []Styles
}

func (s *styledHandle) SetStyles(st Styles) {
	s.styles = append(s.styles, st)
}

func TestFanout(t *testing.T) {
	plain := &recordingHandle{attrs: map[string]string{}}
	styled := &styledHandle{recordingHandle: recordingHandle{attrs: map[string]string{}}}
	f := Fanout{plain, styled}

	f.SetAttribute(AttrFlow, FlowPaginated)
	assert.Equal(t, "paginated", plain.attrs["flow"])
	assert.Equal(t, "paginated", styled.attrs["flow"])

	f.SetStyles(Styles{FontSize: 20})
	require.Len(t, styled.styles, 1)
	assert.Equal(t, 20, styled.styles[0].FontSize)
}
