// Package registry 实现对外注册服务的周期心跳
//
// Service 定期将本站的呼号、描述与软件信息 POST 到配置的
// 注册服务，让公共目录能够发现本站。上报是尽力而为的：
// 单次失败只记录日志，等待下一个周期重试，绝不影响收发
// 主流程。
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/packetd/go-packetd/config"
	loglib "github.com/packetd/go-packetd/pkg/lib/log"
)

var log = loglib.Logger("registry")

// registerPath 注册服务的上报路径
const registerPath = "/api/v1/register"

// requestTimeout 单次上报的超时时间
const requestTimeout = 30 * time.Second

// Software 随心跳上报的软件标识（由装配层注入）
type Software string

// heartbeat 上报给注册服务的负载
type heartbeat struct {
	Callsign       string `json:"callsign"`
	Description    string `json:"description"`
	ServiceWebsite string `json:"service_website"`
	Software       string `json:"software"`
}

// Service 注册服务心跳
type Service struct {
	cfg      config.RegistryConfig
	callsign string
	software string

	clk    clock.Clock
	client *http.Client

	// 状态
	running int32
	closed  int32

	// 同步
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New 创建注册服务心跳
func New(cfg config.RegistryConfig, callsign string, software Software) *Service {
	return newWithClock(cfg, callsign, software, clock.New())
}

// newWithClock 创建使用指定时钟的心跳（测试用）
func newWithClock(cfg config.RegistryConfig, callsign string, software Software, clk clock.Clock) *Service {
	ctx, cancel := context.WithCancel(context.Background())

	return &Service{
		cfg:      cfg,
		callsign: callsign,
		software: string(software),
		clk:      clk,
		client:   &http.Client{Timeout: requestTimeout},
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start 启动心跳
//
// 未启用时记录错误并保持停止状态，与启用后的正常启动一样
// 返回 nil。重复启动是空操作。
func (s *Service) Start(_ context.Context) error {
	if atomic.LoadInt32(&s.closed) == 1 {
		return ErrServiceClosed
	}

	if !s.cfg.Enabled {
		log.Error("注册服务未启用，心跳不启动")
		return nil
	}

	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		return nil
	}

	s.wg.Add(1)
	go s.reportLoop()

	log.Info("注册心跳已启动",
		"url", s.cfg.RegistryURL,
		"frequency", s.cfg.Frequency.Duration())
	return nil
}

// reportLoop 上报循环
//
// 首次上报发生在一个完整周期之后。
func (s *Service) reportLoop() {
	defer s.wg.Done()

	ticker := s.clk.Ticker(s.cfg.Frequency.Duration())
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.report()
		}
	}
}

// report 执行一次上报
//
// 失败只记录日志，等待下一个周期重试。
func (s *Service) report() {
	info := heartbeat{
		Callsign:       s.callsign,
		Description:    s.cfg.Description,
		ServiceWebsite: s.cfg.ServiceWebsite,
		Software:       s.software,
	}

	body, err := json.Marshal(info)
	if err != nil {
		log.Error("序列化心跳失败", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(s.ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.cfg.RegistryURL+registerPath, bytes.NewReader(body))
	if err != nil {
		log.Error("构造心跳请求失败", "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Error("上报注册服务失败", "error", err)
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusMultipleChoices {
		log.Warn("注册服务返回异常状态", "status", resp.StatusCode)
		return
	}

	log.Debug("心跳上报成功", "callsign", s.callsign)
}

// Running 返回心跳是否正在运行
func (s *Service) Running() bool {
	return atomic.LoadInt32(&s.running) == 1
}

// Close 关闭心跳
//
// 幂等：重复关闭返回 nil。
func (s *Service) Close() error {
	if !atomic.CompareAndSwapInt32(&s.closed, 0, 1) {
		return nil
	}

	s.cancel()
	s.wg.Wait()
	atomic.StoreInt32(&s.running, 0)

	log.Info("注册心跳已关闭")
	return nil
}
