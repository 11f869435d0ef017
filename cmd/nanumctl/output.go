package main

import (
	"fmt"
	"io"
	"nanum-admin/backend/models"
	"nanum-admin/backend/services"
	"strconv"
	"text/tabwriter"
)

func printGroups(w io.Writer, groups []models.Group) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\t그룹명\t기관명\t담당자\t핸드폰\t대상자수\t등록일")
	for _, g := range groups {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\t%s\n",
			g.ID, g.Name, g.OrganizationName, g.ManagerName,
			services.FormatPhone(g.MobilePhone), g.TargetCount, g.CreatedAt.Format("2006-01-02"))
	}
	tw.Flush()
}

func printGroup(w io.Writer, g models.Group) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	rows := [][2]string{
		{"ID", strconv.FormatUint(uint64(g.ID), 10)},
		{"그룹명", g.Name},
		{"기관명", g.OrganizationName},
		{"담당자명", g.ManagerName},
		{"주소", g.FullAddress()},
		{"핸드폰", services.FormatPhone(g.MobilePhone)},
		{"일반전화", services.FormatPhone(g.Phone)},
		{"설명", g.Description},
		{"대상자수", strconv.FormatInt(g.TargetCount, 10)},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", r[0], r[1])
	}
	tw.Flush()
}

func printTargets(w io.Writer, targets []models.TargetView) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\t대상자명\t대상구분\t대상가구\t주소\t핸드폰\t집전화\t등록일")
	for _, t := range targets {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Name, t.TargetType, t.TargetHousehold, t.Address,
			services.FormatPhone(t.MobilePhone), services.FormatPhone(t.Phone), t.RegisteredAt)
	}
	tw.Flush()
}
