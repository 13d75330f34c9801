package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"asset-ops/src/models"
	"asset-ops/src/repositories"
)

// ExportHandler renders work order and purchase order listings as CSV or
// XLSX downloads for the admin tables.
type ExportHandler struct {
	WorkOrders *repositories.WorkOrderRepository
	Purchases  *repositories.PurchaseRepository
}

const exportLimit = 10000

// ExportWorkOrders - Export work orders to CSV or Excel
func (h *ExportHandler) ExportWorkOrders(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")

	orders, _, err := h.WorkOrders.List(
		uintQuery(c, "asset_id"),
		models.WorkOrderStatus(c.Query("status")),
		models.WorkOrderPriority(c.Query("priority")),
		1, exportLimit,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	headers := []string{"Number", "Asset ID", "Type", "Priority", "Status", "Scheduled", "Completed", "Description"}
	data := make([][]string, 0, len(orders))
	for _, order := range orders {
		completed := ""
		if order.CompletedDate != nil {
			completed = order.CompletedDate.Format("2006-01-02")
		}
		data = append(data, []string{
			order.WorkOrderNumber,
			strconv.FormatUint(uint64(order.AssetID), 10),
			string(order.MaintenanceType),
			string(order.Priority),
			string(order.Status),
			order.ScheduledDate.Format("2006-01-02"),
			completed,
			order.Description,
		})
	}

	if format == "xlsx" {
		exportExcel(c, "WorkOrders", headers, data)
	} else {
		exportCSV(c, "work_orders.csv", headers, data)
	}
}

// ExportPurchaseOrders - Export purchase orders to CSV or Excel
func (h *ExportHandler) ExportPurchaseOrders(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")

	orders, _, err := h.Purchases.List(
		uintQuery(c, "supplier_id"),
		models.PurchaseOrderStatus(c.Query("status")),
		1, exportLimit,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	headers := []string{"Number", "Supplier ID", "Status", "Order Date", "Expected Delivery", "Total", "Lines", "Received Lines"}
	data := make([][]string, 0, len(orders))
	for _, order := range orders {
		expected := ""
		if order.ExpectedDelivery != nil {
			expected = order.ExpectedDelivery.Format("2006-01-02")
		}
		receivedLines := 0
		for _, item := range order.Items {
			if item.QuantityReceived >= item.Quantity {
				receivedLines++
			}
		}
		data = append(data, []string{
			order.PONumber,
			strconv.FormatUint(uint64(order.SupplierID), 10),
			string(order.Status),
			order.OrderDate.Format("2006-01-02"),
			expected,
			fmt.Sprintf("%.2f", order.TotalAmount),
			strconv.Itoa(len(order.Items)),
			strconv.Itoa(receivedLines),
		})
	}

	if format == "xlsx" {
		exportExcel(c, "PurchaseOrders", headers, data)
	} else {
		exportCSV(c, "purchase_orders.csv", headers, data)
	}
}

// exportCSV writes data to CSV format.
func exportCSV(c *gin.Context, filename string, headers []string, data [][]string) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Status(http.StatusOK)

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	if err := writer.Write(headers); err != nil {
		return
	}
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			return
		}
	}
}

// exportExcel writes data to Excel format.
func exportExcel(c *gin.Context, sheetName string, headers []string, data [][]string) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		respondError(c, err)
		return
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		respondError(c, err)
		return
	}

	for i, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, row := range data {
		for colIdx, value := range row {
			cell := fmt.Sprintf("%s%d", string(rune('A'+colIdx)), rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range headers {
		col := string(rune('A' + i))
		f.SetColWidth(sheetName, col, col, 15)
	}

	if sheetName != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_%s.xlsx",
		strings.ToLower(sheetName), time.Now().Format("20060102")))
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		return
	}
}
