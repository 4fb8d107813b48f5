package query

import (
	"context"
	"fmt"

	"github.com/edgetap/iothub-go/pkg/iothub"
)

// Run streams query rows to stdout, one JSON document per line.
func Run(ctx context.Context, client *iothub.Client, query string, pageSize int) error {
	pager := client.Devices.Query(query, pageSize)

	for pager.More() {
		rows, err := pager.NextPage(ctx)

		if err != nil {
			return err
		}

		for _, row := range rows {
			fmt.Println(string(row))
		}
	}

	return nil
}
