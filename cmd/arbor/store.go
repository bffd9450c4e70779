package main

import (
	"github.com/aretw0/arbor/internal/adapters/file"
	"github.com/aretw0/arbor/internal/adapters/redis"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/spf13/cobra"
)

// openStore picks the snapshot store from the config. It returns nil when
// neither a directory nor a redis address is configured.
func openStore() (ports.SnapshotStore, func() error) {
	switch {
	case cfg.RedisAddr != "":
		s := redis.New(cfg.RedisAddr, "", 0)
		return s, s.Close
	case cfg.SnapshotDir != "":
		return file.New(cfg.SnapshotDir), func() error { return nil }
	default:
		return nil, func() error { return nil }
	}
}

func storeFlags(cmd *cobra.Command) {
	cmd.Flags().String("snapshot-dir", "", "Record tick snapshots as JSON files in this directory")
	cmd.Flags().String("redis-addr", "", "Record and publish tick snapshots in this Redis server")
}
