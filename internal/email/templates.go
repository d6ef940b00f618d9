package email

import "fmt"

// BuildLowStockBody renders the HTML body of a low-stock alert.
func BuildLowStockBody(itemName string, remaining, threshold int) string {
	return fmt.Sprintf(`<html>
<body>
  <h2>Low stock warning</h2>
  <p>Item <strong>%s</strong> is down to <strong>%d</strong> units
  (alert threshold: %d).</p>
  <p>Consider restocking before the next shipment window.</p>
</body>
</html>`, itemName, remaining, threshold)
}
