//go:build ignore

// This program generates sample workbooks for manual testing:
// a machine details source and a STAF workbook whose floor plan
// displays the daily coin-in figures.
package main

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

func main() {
	if err := generateDetails(); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating machine_details.xlsx: %v\n", err)
		os.Exit(1)
	}

	if err := generateSTAF(); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating staf_sample.xlsx: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Test fixtures generated successfully.")
}

func generateDetails() error {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", "Machine Details")

	rows := [][]interface{}{
		{"Position", "Asset Number", "Serial Number", "Denom", "Game Theme"},
		{1, 61623168, "SN-84421", "1¢", "Buffalo Gold"},
		{2, 61623169, "SN-84422", "5¢", "Lightning Link"},
		{3, 61623170, "SN-84423", "1¢", "Dragon Cash"},
		{4, 61623171, "SN-84424", "25¢", "Wheel of Fortune"},
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			f.SetCellValue("Machine Details", cell, v)
		}
	}

	return f.SaveAs("testdata/machine_details.xlsx")
}

func generateSTAF() error {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", "FLOOR PLAN")
	if _, err := f.NewSheet("TOTALS"); err != nil {
		return err
	}

	coin := []float64{1250.50, 980.25, 1422.75, 660.00}
	net := []float64{310.40, 120.15, 488.60, 95.00}

	f.SetCellValue("TOTALS", "A1", "Slot Totals")
	f.SetCellValue("TOTALS", "B3", "DAILY COIN IN")
	f.SetCellValue("TOTALS", "C3", "DAILY NET WIN")
	for i := range coin {
		coinCell, _ := excelize.CoordinatesToCellName(2, 4+i)
		netCell, _ := excelize.CoordinatesToCellName(3, 4+i)
		f.SetCellValue("TOTALS", coinCell, coin[i])
		f.SetCellValue("TOTALS", netCell, net[i])
	}

	// Floor plan: each machine is a position label with its displayed
	// coin-in value directly below.
	for i := range coin {
		posCell, _ := excelize.CoordinatesToCellName(2+i*2, 4)
		valCell, _ := excelize.CoordinatesToCellName(2+i*2, 5)
		f.SetCellValue("FLOOR PLAN", posCell, i+1)
		f.SetCellValue("FLOOR PLAN", valCell, coin[i])
	}

	return f.SaveAs("testdata/staf_sample.xlsx")
}
