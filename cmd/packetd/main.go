// Package main 提供 packetd 守护进程入口
//
// 使用方法:
//
//	packetd -config config.json
//	packetd -callsign N0CALL -data ./data
//
// 收到 SIGINT/SIGTERM 后保存各存储快照并优雅退出。
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	packetd "github.com/packetd/go-packetd"
	"github.com/packetd/go-packetd/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 解析命令行参数
	configPath := flag.String("config", "", "配置文件路径（JSON）")
	callsign := flag.String("callsign", "", "本机电台呼号（覆盖配置文件）")
	dataDir := flag.String("data", "", "数据目录（覆盖配置文件）")
	showVersion := flag.Bool("version", false, "打印版本信息并退出")
	flag.Parse()

	if *showVersion {
		fmt.Println(packetd.VersionInfo())
		return nil
	}

	// 加载配置
	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *callsign != "" {
		cfg.Callsign = *callsign
	}
	if *dataDir != "" {
		cfg.Storage.DataDir = *dataDir
	}

	// 创建守护进程
	d, err := packetd.New(cfg)
	if err != nil {
		return fmt.Errorf("创建守护进程失败: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 捕获中断信号
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-signalCh
		fmt.Printf("收到信号 %v，正在关闭...\n", sig)
		cancel()
	}()

	// 启动
	if err := d.Start(ctx); err != nil {
		return fmt.Errorf("启动守护进程失败: %w", err)
	}

	fmt.Printf("%s 已启动，呼号 %s\n", packetd.VersionInfo(), cfg.Callsign)

	// 等待关闭
	<-ctx.Done()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()

	if err := d.Stop(stopCtx); err != nil {
		return fmt.Errorf("停止守护进程失败: %w", err)
	}

	fmt.Println("已退出")
	return nil
}

// loadConfig 加载配置文件，未指定时使用默认配置
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.NewConfig(), nil
	}
	return config.LoadFile(path)
}
