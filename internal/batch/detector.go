package batch

// ── 批内去重 ──

// Duplicate 重复行标记：index 行与更早的 firstIndex 行自然键相同
type Duplicate struct {
	Index      int
	FirstIndex int
}

// DetectDuplicates 单趟从左到右扫描整个批次，标记所有非首次出现的行
// 首次出现的行永远不被标记；比较为字面精确匹配，O(n)
func DetectDuplicates(records []Record) []Duplicate {
	firstSeen := make(map[NaturalKey]int, len(records))
	var dups []Duplicate
	for i := range records {
		key := records[i].Key()
		if first, ok := firstSeen[key]; ok {
			dups = append(dups, Duplicate{Index: i, FirstIndex: first})
			continue
		}
		firstSeen[key] = i
	}
	return dups
}

