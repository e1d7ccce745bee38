package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/swissgeo/internal/query"
	"github.com/sells-group/swissgeo/internal/report"
)

var (
	queryCanton     string
	queryDistrict   string
	queryZip        string
	queryPostalName string
	queryCount      bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query cantons, districts and communities",
}

// newQueryService validates the output format and builds the model.
func newQueryService(cmd *cobra.Command) (*query.Service, error) {
	if !report.ValidFormat(outputFormat) {
		return nil, eris.Errorf("unsupported format %q", outputFormat)
	}
	m, err := loadModel(cmd.Context(), "load")
	if err != nil {
		return nil, err
	}
	return query.New(m), nil
}

var queryCommunitiesCmd = &cobra.Command{
	Use:   "communities",
	Short: "List political communities of a canton or district",
	RunE: func(cmd *cobra.Command, args []string) error {
		if (queryCanton == "") == (queryDistrict == "") {
			return eris.New("exactly one of --canton or --district is required")
		}

		svc, err := newQueryService(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if queryCanton != "" {
			if queryCount {
				n, err := svc.CountPoliticalCommunitiesInCanton(queryCanton)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(out, n)
				return nil
			}
			return report.WriteCommunities(out, outputFormat, svc.PoliticalCommunitiesInCanton(queryCanton))
		}

		if queryCount {
			n, err := svc.CountPoliticalCommunitiesInDistrict(queryDistrict)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(out, n)
			return nil
		}
		return report.WriteCommunities(out, outputFormat, svc.PoliticalCommunitiesInDistrict(queryDistrict))
	},
}

var queryDistrictsCmd = &cobra.Command{
	Use:   "districts",
	Short: "List districts of a canton",
	RunE: func(cmd *cobra.Command, args []string) error {
		if queryCanton == "" {
			return eris.New("--canton is required")
		}

		svc, err := newQueryService(cmd)
		if err != nil {
			return err
		}

		if queryCount {
			n, err := svc.CountDistrictsInCanton(queryCanton)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		}
		return report.WriteDistricts(cmd.OutOrStdout(), outputFormat, svc.DistrictsInCanton(queryCanton))
	},
}

var queryZipCmd = &cobra.Command{
	Use:   "zip",
	Short: "List district names served by a zip code",
	RunE: func(cmd *cobra.Command, args []string) error {
		if queryZip == "" {
			return eris.New("--zip is required")
		}

		svc, err := newQueryService(cmd)
		if err != nil {
			return err
		}
		return report.WriteNames(cmd.OutOrStdout(), outputFormat, svc.DistrictNamesForZipCode(queryZip))
	},
}

var queryLastUpdateCmd = &cobra.Command{
	Use:   "last-update",
	Short: "Print the last update of the political community behind a postal community name",
	RunE: func(cmd *cobra.Command, args []string) error {
		if queryPostalName == "" {
			return eris.New("--postal-name is required")
		}

		svc, err := newQueryService(cmd)
		if err != nil {
			return err
		}

		t, err := svc.LastUpdateByPostalCommunityName(queryPostalName)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), t.Format(report.DateLayout))
		return nil
	},
}

func init() {
	queryCommunitiesCmd.Flags().StringVar(&queryCanton, "canton", "", "canton code, e.g. ZH")
	queryCommunitiesCmd.Flags().StringVar(&queryDistrict, "district", "", "district number")
	queryCommunitiesCmd.Flags().BoolVar(&queryCount, "count", false, "print the count only")

	queryDistrictsCmd.Flags().StringVar(&queryCanton, "canton", "", "canton code, e.g. ZH")
	queryDistrictsCmd.Flags().BoolVar(&queryCount, "count", false, "print the count only")

	queryZipCmd.Flags().StringVar(&queryZip, "zip", "", "four-digit zip code")

	queryLastUpdateCmd.Flags().StringVar(&queryPostalName, "postal-name", "", "postal community name")

	queryCmd.AddCommand(queryCommunitiesCmd, queryDistrictsCmd, queryZipCmd, queryLastUpdateCmd)
	rootCmd.AddCommand(queryCmd)
}
