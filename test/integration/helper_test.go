package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-ledger/internal/application/store"
	"github.com/xiebiao/bookstore-ledger/internal/domain/order"
	"github.com/xiebiao/bookstore-ledger/internal/interface/http/router"
)

// 集成测试辅助工具
// 每个测试启动一个独立的进程内HTTP服务,走完整的 路由 → 中间件 → 用例 → 内存状态 链路

const timeout = 10 * time.Second

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Status  int             `json:"-"`
}

type testServer struct {
	*httptest.Server
	store  *store.Store
	client *http.Client
}

func (s *testServer) api(path string) string {
	return s.URL + "/api/v1" + path
}

// startServer 启动测试服务,测试结束时自动关闭
func startServer(t *testing.T, publisher order.EventPublisher) *testServer {
	t.Helper()
	st := store.New()
	engine := router.New(router.Options{Mode: gin.TestMode}, router.NewHandlers(st, publisher))
	srv := httptest.NewServer(engine)
	client := &http.Client{Timeout: timeout}
	t.Cleanup(func() {
		client.CloseIdleConnections()
		srv.Close()
	})
	return &testServer{Server: srv, store: st, client: client}
}

func (s *testServer) do(t *testing.T, method, url string, data interface{}) *Response {
	t.Helper()
	var body io.Reader
	if data != nil {
		payload, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	require.NoError(t, json.Unmarshal(raw, &result), "解析JSON响应失败: %s", string(raw))
	result.Status = resp.StatusCode
	return &result
}

func (s *testServer) post(t *testing.T, path string, data interface{}) *Response {
	return s.do(t, http.MethodPost, s.api(path), data)
}

func (s *testServer) get(t *testing.T, path string) *Response {
	return s.do(t, http.MethodGet, s.api(path), nil)
}

func (s *testServer) addItem(t *testing.T, id, title, price string, quantity int) {
	t.Helper()
	resp := s.post(t, "/items", map[string]interface{}{
		"id":       id,
		"title":    title,
		"author":   "测试作者",
		"price":    price,
		"quantity": quantity,
	})
	require.Equal(t, http.StatusCreated, resp.Status, "入库失败: %s", resp.Message)
}

func decode(t *testing.T, resp *Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(resp.Data, v), "解析响应数据失败")
}
