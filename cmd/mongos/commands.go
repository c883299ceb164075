package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guneyilmaz0/MongoS/pkg/mongos"
	"github.com/guneyilmaz0/MongoS/pkg/storage"
)

var (
	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Prints the stored value for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			value, err := client.DB().Get(cmd.Context(), collection, args[0])
			if err != nil {
				return err
			}
			fmt.Println(value)
			return nil
		},
	}

	setCmd = &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Stores a value under a key, replacing any existing record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.DB().Set(cmd.Context(), collection, args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("set successfully")
			return nil
		},
	}

	delCmd = &cobra.Command{
		Use:   "del [key]",
		Short: "Removes the record for a key and prints its value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			rec, err := client.DB().RemoveData(cmd.Context(), collection, mongos.ByKey(args[0]))
			if err != nil {
				return err
			}
			fmt.Println(rec.Value)
			return nil
		},
	}

	existsCmd = &cobra.Command{
		Use:   "exists [key]",
		Short: "Reports whether a record exists for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			ok, err := client.DB().Exists(cmd.Context(), collection, mongos.ByKey(args[0]))
			if err != nil {
				return err
			}
			fmt.Println(ok)
			return nil
		},
	}

	keysCmd = &cobra.Command{
		Use:   "keys",
		Short: "Lists every key in the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			keys, err := client.DB().GetKeys(cmd.Context(), collection)
			if err != nil {
				return err
			}
			for _, key := range keys {
				fmt.Println(key)
			}
			return nil
		},
	}

	renameCmd = &cobra.Command{
		Use:   "rename [oldKey] [newKey]",
		Short: "Moves a record to a new key (best-effort, not atomic)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.DB().RenameKey(cmd.Context(), collection, args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("renamed successfully")
			return nil
		},
	}

	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Probes the deployment and prints the health status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				fmt.Println("unhealthy:", err)
				return nil
			}
			defer client.Close()

			mgr := storage.NewManager()
			mgr.MustRegister("mongodb", client)

			status := mgr.HealthCheck(cmd.Context(), "mongodb")
			if status.Healthy {
				fmt.Printf("healthy (latency: %v)\n", status.Latency)
			} else {
				fmt.Println("unhealthy:", status.Error)
			}
			return nil
		},
	}
)
