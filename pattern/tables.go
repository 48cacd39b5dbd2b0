package pattern

// Starting offset tables. Entry n holds one offset per row for n+1 rows.

// centerOffsets starts the outer rows first and the middle rows last.
var centerOffsets = OffsetTable{
	{0},
	{0, 0},
	{0, 1, 0},
	{0, 1, 1, 0},
	{0, 1, 2, 1, 0},
	{0, 1, 2, 2, 1, 0},
	{0, 1, 2, 3, 2, 1, 0},
}

// topToBottomOffsets shifts each row one frame behind the row above it.
var topToBottomOffsets = OffsetTable{
	{0},
	{0, 1},
	{0, 1, 2},
	{0, 1, 2, 3},
	{0, 1, 2, 3, 4},
	{0, 1, 2, 3, 4, 5},
	{0, 1, 2, 3, 4, 5, 6},
}

// equalOffsets keeps every row in phase.
var equalOffsets = OffsetTable{
	{0},
	{0, 0},
	{0, 0, 0},
	{0, 0, 0, 0},
	{0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0},
}

// Row template tables.

var dividingHorizontalRows = RowTable{
	{0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0},
	{1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1},
}

var dividingVerticalRows = RowTable{
	{0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 1, 0, 0, 0},
	{0, 0, 1, 1, 1, 0, 0},
	{0, 1, 1, 1, 1, 1, 0},
	{1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 0, 1, 1, 1},
	{1, 1, 0, 0, 0, 1, 1},
	{1, 0, 0, 0, 0, 0, 1},
	{0, 0, 0, 0, 0, 0, 0},
}

var arrowRightRows = RowTable{
	{1, 0, 0, 0, 0, 0, 1},
	{1, 1, 0, 0, 0, 0, 0},
	{0, 1, 1, 0, 0, 0, 0},
	{0, 0, 1, 1, 0, 0, 0},
	{0, 0, 0, 1, 1, 0, 0},
	{0, 0, 0, 0, 1, 1, 0},
	{0, 0, 0, 0, 0, 1, 1},
}

var matrixRainRows = RowTable{
	{1, 0, 0, 0, 0, 1, 1},
	{1, 0, 1, 0, 0, 0, 1},
	{1, 0, 1, 0, 1, 0, 0},
	{0, 0, 1, 0, 1, 0, 0},
	{0, 1, 0, 0, 1, 0, 1},
	{0, 1, 0, 0, 0, 0, 1},
	{0, 1, 0, 1, 0, 0, 1},
	{0, 0, 0, 1, 0, 1, 0},
	{1, 0, 1, 1, 0, 1, 0},
	{1, 0, 1, 0, 1, 1, 0},
	{0, 1, 0, 0, 1, 0, 1},
	{0, 1, 0, 0, 0, 0, 1},
	{1, 0, 0, 1, 0, 0, 0},
	{1, 0, 0, 1, 0, 1, 0},
	{0, 0, 0, 1, 0, 1, 1},
}

var expansionRows = RowTable{
	{0, 0, 0, 1, 0, 0, 0},
	{0, 0, 1, 1, 1, 0, 0},
	{0, 1, 1, 0, 1, 1, 0},
	{1, 1, 0, 0, 0, 1, 1},
	{1, 0, 0, 0, 0, 0, 1},
}

var expansionFillRows = RowTable{
	{0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 1, 0, 0, 0},
	{0, 0, 1, 1, 1, 0, 0},
	{0, 1, 1, 1, 1, 1, 0},
	{1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 0, 1, 1, 1},
	{1, 1, 0, 0, 0, 1, 1},
	{1, 0, 0, 0, 0, 0, 1},
}
