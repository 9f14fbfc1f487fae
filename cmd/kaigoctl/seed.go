package main

import (
	"context"
	"fmt"

	"github.com/kaigoApp/kaigo-app/internal/migrations"
	"github.com/kaigoApp/kaigo-app/internal/service"

	"github.com/spf13/cobra"
)

// demoUnits 演示用单元及其入居者
var demoUnits = []struct {
	name      string
	residents []string
}{
	{"ユニットA", []string{"佐藤 太郎", "鈴木 花子", "田中 次郎", "山田 恒一"}},
	{"ユニットB", []string{"高橋 美咲", "伊藤 恒一"}},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo units and residents into an empty database",
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		if err := migrations.Up(ctx, e.db, e.cfg.DBDriver, e.logger); err != nil {
			return err
		}
		directory := service.NewDirectoryService(e.store, e.logger, service.Options{OpTimeout: e.cfg.OpTimeout})
		n, err := seedDemo(ctx, directory)
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "units already present, nothing seeded")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d units\n", n)
		return nil
	},
}

// seedDemo 只在没有任何单元时写入，返回新建单元数
func seedDemo(ctx context.Context, directory *service.DirectoryService) (int, error) {
	existing, err := directory.ListUnits(ctx, true)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for _, du := range demoUnits {
		u, err := directory.CreateUnit(ctx, service.CreateUnitRequest{Name: du.name})
		if err != nil {
			return 0, fmt.Errorf("seed unit %s: %w", du.name, err)
		}
		for _, name := range du.residents {
			if _, err := directory.CreateResident(ctx, service.CreateResidentRequest{UnitID: u.UnitID, Name: name}); err != nil {
				return 0, fmt.Errorf("seed resident %s: %w", name, err)
			}
		}
	}
	return len(demoUnits), nil
}
