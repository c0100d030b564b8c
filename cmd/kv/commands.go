package kv

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	setCmd = &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Sets the value for a key and prints the value it replaced",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]
			prev, replaced, err := rpcStore.Set(cmd.Context(), key, []byte(value))
			if err != nil {
				return err
			}
			if replaced {
				fmt.Printf("set successfully, previous value: %s\n", prev)
			} else {
				fmt.Println("set successfully")
			}
			return nil
		},
	}
	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Gets the value for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value, exists, err := rpcStore.Get(cmd.Context(), key)
			if err != nil {
				return err
			}
			if !exists {
				fmt.Println("key does not exist")
			} else {
				fmt.Println(string(value))
			}
			return nil
		},
	}
)
