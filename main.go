package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lawbase/casedb/config"
	"github.com/lawbase/casedb/consts"
	"github.com/lawbase/casedb/log"
	"github.com/lawbase/casedb/pipeline"
	"github.com/lawbase/casedb/pprof"
	"github.com/lawbase/casedb/query"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "casedb",
		Short:         "Load Chinese legal case CSV dumps into one SQLite file and query it",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(ingestCmd(), queryCmd(), distinctCmd())
	return root
}

func ingestCmd() *cobra.Command {
	var dataPath, dbPath, cfgPath, pprofAddr string
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Walk the data path, load every CSV file and build indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(cfgPath)
			if err != nil {
				log.Error(err)
				return err
			}
			if pprofAddr != "" {
				go func() {
					if err := pprof.StartPprofServer(pprofAddr); err != nil {
						log.Error(err)
					}
				}()
			}
			start := time.Now().UnixNano()
			result, err := pipeline.New(cfg).Run(dataPath, dbPath)
			if err != nil {
				log.Error(err)
				return err
			}
			log.Infof("time-consuming %dms", (time.Now().UnixNano()-start)/1e6)
			for _, table := range result.Tables {
				log.Infof("table %s, %d rows inserted", table, result.Rows[table])
			}
			log.Infof("%d indexes in place", len(result.Indexes))
			for _, f := range result.Failures {
				log.Warnf("failed %s: %v", f.File, f.Err)
			}
			if len(result.Failures) > 0 {
				log.Warnf("%d of the discovered files failed, see above", len(result.Failures))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dataPath, "data-path", consts.DefaultDataPath, "dir path of source CSV data")
	cmd.Flags().StringVar(&dbPath, "db", consts.DefaultDatabase, "path of the target database file")
	cmd.Flags().StringVar(&cfgPath, "config", "", "index configuration file (default "+config.ConfigFileName+")")
	cmd.Flags().StringVar(&pprofAddr, "pprof", "", "start a pprof listener on this address")
	return cmd
}

func queryCmd() *cobra.Command {
	var dbPath, table string
	var where []string
	var fuzzy bool
	var limit int
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run a filtered row query against an ingested database",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := query.New(dbPath)
			if err != nil {
				log.Error(err)
				return err
			}
			defer svc.Close()
			filter, err := parseFilter(where, fuzzy)
			if err != nil {
				return err
			}
			result, err := svc.Query(table, filter, limit)
			if err != nil {
				log.Error(err)
				return err
			}
			w := csv.NewWriter(os.Stdout)
			_ = w.Write(result.Cols)
			record := make([]string, len(result.Cols))
			for _, row := range result.Rows {
				for i, v := range row {
					if v == nil {
						record[i] = ""
					} else {
						record[i] = fmt.Sprintf("%v", v)
					}
				}
				_ = w.Write(record)
			}
			w.Flush()
			return w.Error()
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", consts.DefaultDatabase, "path of the database file")
	cmd.Flags().StringVar(&table, "table", "", "table to query")
	cmd.Flags().StringArrayVar(&where, "where", nil, "column=value condition, repeatable; repeats on one column are OR'd")
	cmd.Flags().BoolVar(&fuzzy, "fuzzy", false, "match values with LIKE %value%")
	cmd.Flags().IntVar(&limit, "limit", 0, "max rows, 0 for all")
	_ = cmd.MarkFlagRequired("table")
	return cmd
}

func distinctCmd() *cobra.Command {
	var dbPath, table, column string
	cmd := &cobra.Command{
		Use:   "distinct",
		Short: "List the unique non-null values of one column",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := query.New(dbPath)
			if err != nil {
				log.Error(err)
				return err
			}
			defer svc.Close()
			values, err := svc.DistinctValues(table, column)
			if err != nil {
				log.Error(err)
				return err
			}
			for _, v := range values {
				fmt.Println(v)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", consts.DefaultDatabase, "path of the database file")
	cmd.Flags().StringVar(&table, "table", "", "table to query")
	cmd.Flags().StringVar(&column, "column", "", "column to enumerate")
	_ = cmd.MarkFlagRequired("table")
	_ = cmd.MarkFlagRequired("column")
	return cmd
}

func parseFilter(where []string, fuzzy bool) (query.Filter, error) {
	filter := query.Filter{}
	for _, w := range where {
		i := strings.Index(w, "=")
		if i <= 0 {
			return nil, fmt.Errorf("bad --where %q, want column=value", w)
		}
		col, val := w[:i], w[i+1:]
		c := filter[col]
		c.Fuzzy = fuzzy
		c.Values = append(c.Values, val)
		filter[col] = c
	}
	return filter, nil
}
