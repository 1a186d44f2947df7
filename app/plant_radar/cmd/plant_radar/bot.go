package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/engine"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/logger"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/telegram"
)

func newBotCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "启动 Telegram 机器人（长轮询）",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return fmt.Errorf("无法加载配置文件: %w", err)
			}

			eng, err := engine.NewEngine(cfg)
			if err != nil {
				return err
			}
			defer eng.Close()

			bot, err := telegram.NewBot(cfg.Telegram.Token, cfg.Telegram.Debug, eng, cfg.Vision.MaxImageBytes)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Log.Info("启动植物雷达 Telegram 机器人...")
			if err := bot.Run(ctx); err != nil && err != context.Canceled {
				return err
			}
			logger.Log.Info("机器人已退出")
			return nil
		},
	}
}
