// Package logging 根据配置构造 slog 日志记录器。
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lwmacct/261019-go-pkg-glossmark/internal/config"
)

// New 按 cfg 创建写入 w 的日志记录器。
//
// Level 接受 debug/info/warn/error（不区分大小写，空值为 info）；
// Format 接受 text/json（空值为 text）。
func New(w io.Writer, cfg config.LogConfig) (*slog.Logger, error) {
	var level slog.Level
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
	}

	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}
}
