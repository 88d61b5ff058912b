package tagmap

import (
	"github.com/liserjrqlxue/goUtil/simpleUtil"
	"github.com/xuri/excelize/v2"
)

// Xlsx2Slice reads the first sheet of a workbook as rows of cells.
// The metadata workbook carries the same 10 column layout as the TSV export.
func Xlsx2Slice(path string) [][]string {
	var xlsx = simpleUtil.HandleError(excelize.OpenFile(path))
	defer simpleUtil.DeferClose(xlsx)
	return simpleUtil.HandleError(xlsx.GetRows(xlsx.GetSheetName(0)))
}
