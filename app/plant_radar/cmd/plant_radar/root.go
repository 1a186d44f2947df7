package main

import (
	"errors"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/config"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/logger"
)

const defaultConfigPath = "configs/config.yaml"

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "plant_radar",
		Short:        "植物病害诊断：上传叶片照片，返回结构化的诊断报告",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", defaultConfigPath, "配置文件路径")

	cmd.AddCommand(
		newDiagnoseCmd(opts),
		newInterpretCmd(),
		newBotCmd(opts),
	)
	return cmd
}

// load 加载配置并初始化日志。默认配置文件不存在时只使用环境变量和默认值。
func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) || o.configPath != defaultConfigPath {
			return nil, err
		}
		cfg = &config.Config{}
		cfg.ApplyEnv()
		cfg.ApplyDefaults()
	}

	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		return nil, err
	}
	return cfg, nil
}
