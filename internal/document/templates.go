package document

// Print-ready document templates. html/template escapes every interpolated
// field contextually, including attribute positions; the only values that
// bypass escaping are logo URLs, which go through the SafeImageURL
// allow-list instead.

const billTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Statement {{.Patient.PatientID}}</title>
<style>
body { font-family: "Segoe UI", Arial, sans-serif; margin: 24px; color: #222; }
header { display: flex; align-items: center; gap: 16px; border-bottom: 2px solid #444; padding-bottom: 12px; }
header img { max-height: 64px; }
h1 { font-size: 20px; margin: 0; }
.meta { color: #555; font-size: 13px; }
table { width: 100%; border-collapse: collapse; margin-top: 16px; font-size: 13px; }
th, td { border: 1px solid #bbb; padding: 6px 8px; text-align: left; }
th { background: #f0f0f0; }
td.num { text-align: right; }
.summary { margin-top: 16px; width: 320px; margin-left: auto; font-size: 14px; }
.summary td { border: none; padding: 4px 8px; }
.balance-due td { font-weight: bold; color: #a40000; }
.balance-refund td { font-weight: bold; color: #006400; }
.balance-settled td { font-weight: bold; }
.degraded { margin-top: 12px; color: #a40000; font-size: 12px; }
footer { margin-top: 32px; font-size: 12px; color: #777; }
</style>
</head>
<body>
<header>
{{with logo .Hospital.LogoURL}}<img src="{{.}}" alt="logo">{{end}}
<div>
<h1>{{.Hospital.Name}}</h1>
<div class="meta">{{.Hospital.Address}}{{if .Hospital.Phone}} &middot; {{.Hospital.Phone}}{{end}}</div>
</div>
</header>

<h2>Patient Statement</h2>
<div class="meta">
{{.Patient.Name}} ({{.Patient.PatientID}}) &middot; {{.Patient.Age}} / {{.Patient.Gender}}<br>
{{.Patient.Address}}{{if .Patient.Phone}} &middot; {{.Patient.Phone}}{{end}}<br>
Generated: {{.GeneratedAt}}
</div>

<table>
<tr><th>Date</th><th>Receipt No.</th><th>Description</th><th>Doctor</th><th>Qty</th><th>Rate</th><th>Amount</th></tr>
{{range .Events}}
<tr>
<td>{{.DisplayDate}}</td>
<td>{{receipt .ReceiptNumber}}</td>
<td>{{.Title}}{{if .Description}} &mdash; {{.Description}}{{end}}</td>
<td>{{.DoctorName}}</td>
<td class="num">{{.Quantity}}</td>
<td class="num">{{inr .UnitRate}}</td>
<td class="num">{{inr .Amount}}</td>
</tr>
{{end}}
</table>

<table class="summary">
<tr><td>Total Charges</td><td class="num">{{inr .Summary.TotalCharges}}</td></tr>
<tr><td>Total Payments</td><td class="num">{{inr .Summary.TotalPayments}}</td></tr>
<tr><td>Total Discounts</td><td class="num">{{inr .Summary.TotalDiscounts}}</td></tr>
<tr class="{{balanceClass .Summary}}"><td>{{balanceLabel .Summary}}</td><td class="num">{{inr .Summary.Balance}}</td></tr>
</table>

{{if .Degraded}}<div class="degraded">Some receipt numbers were issued while the numbering service was unreachable and are pending reconciliation.</div>{{end}}

<footer>This is a computer generated statement.</footer>
</body>
</html>
`

const receiptTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Receipt {{receipt .Event.ReceiptNumber}}</title>
<style>
body { font-family: "Segoe UI", Arial, sans-serif; margin: 24px; color: #222; width: 420px; }
header { text-align: center; border-bottom: 1px solid #444; padding-bottom: 8px; }
header img { max-height: 48px; }
h1 { font-size: 16px; margin: 4px 0; }
.meta { color: #555; font-size: 12px; }
table { width: 100%; margin-top: 12px; font-size: 13px; }
td { padding: 3px 0; }
td.num { text-align: right; }
.total td { border-top: 1px solid #444; font-weight: bold; }
</style>
</head>
<body>
<header>
{{with logo .Hospital.LogoURL}}<img src="{{.}}" alt="logo">{{end}}
<h1>{{.Hospital.Name}}</h1>
<div class="meta">{{.Hospital.Address}}</div>
</header>

<table>
<tr><td>Receipt No.</td><td class="num">{{receipt .Event.ReceiptNumber}}</td></tr>
<tr><td>Date</td><td class="num">{{.Event.DisplayDate}}</td></tr>
<tr><td>Patient</td><td class="num">{{.Patient.Name}} ({{.Patient.PatientID}})</td></tr>
<tr><td>Doctor</td><td class="num">{{.Event.DoctorName}}</td></tr>
<tr><td>{{.Event.Title}}{{if .Event.Description}} &mdash; {{.Event.Description}}{{end}}</td><td class="num">{{inr .Event.UnitRate}} &times; {{.Event.Quantity}}</td></tr>
<tr class="total"><td>Amount</td><td class="num">{{inr .Event.Amount}}</td></tr>
</table>
</body>
</html>
`

const adhocBillTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Bill {{.BillNumber}}</title>
<style>
body { font-family: "Segoe UI", Arial, sans-serif; margin: 24px; color: #222; }
header { display: flex; align-items: center; gap: 16px; border-bottom: 2px solid #444; padding-bottom: 12px; }
header img { max-height: 64px; }
h1 { font-size: 20px; margin: 0; }
.meta { color: #555; font-size: 13px; }
table { width: 100%; border-collapse: collapse; margin-top: 16px; font-size: 13px; }
th, td { border: 1px solid #bbb; padding: 6px 8px; text-align: left; }
th { background: #f0f0f0; }
td.num { text-align: right; }
.summary { margin-top: 16px; width: 320px; margin-left: auto; font-size: 14px; }
.summary td { border: none; padding: 4px 8px; }
.balance-due td { font-weight: bold; color: #a40000; }
.balance-refund td { font-weight: bold; color: #006400; }
.balance-settled td { font-weight: bold; }
</style>
</head>
<body>
<header>
{{with logo .Hospital.LogoURL}}<img src="{{.}}" alt="logo">{{end}}
<div>
<h1>{{.Hospital.Name}}</h1>
<div class="meta">{{.Hospital.Address}}{{if .Hospital.Phone}} &middot; {{.Hospital.Phone}}{{end}}</div>
</div>
</header>

<h2>Bill {{.BillNumber}}</h2>
<div class="meta">{{.PatientName}} &middot; {{.Date}}</div>

<table>
<tr><th>Date</th><th>Description</th><th>Qty</th><th>Rate</th><th>Amount</th></tr>
{{range .Items}}
<tr>
<td>{{.Date}}</td>
<td>{{.Description}}</td>
<td class="num">{{.Quantity}}</td>
<td class="num">{{inr .Rate}}</td>
<td class="num">{{inr .Amount}}</td>
</tr>
{{end}}
</table>

<table class="summary">
<tr><td>Total Charges</td><td class="num">{{inr .Summary.TotalCharges}}</td></tr>
<tr><td>Total Payments</td><td class="num">{{inr .Summary.TotalPayments}}</td></tr>
<tr><td>Total Discounts</td><td class="num">{{inr .Summary.TotalDiscounts}}</td></tr>
<tr class="{{balanceClass .Summary}}"><td>{{balanceLabel .Summary}}</td><td class="num">{{inr .Summary.Balance}}</td></tr>
</table>
</body>
</html>
`
