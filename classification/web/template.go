package web

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Gaussian and Bernoulli Naive Bayes</title>
<style>
body { font-family: sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; }
table { border-collapse: collapse; margin: 1rem 0; }
td, th { border: 1px solid #ccc; padding: 0.25rem 0.6rem; text-align: right; }
pre { background: #f6f6f6; padding: 0.5rem; overflow-x: auto; }
</style>
</head>
<body>
<h1>Understanding Gaussian and Bernoulli Naive Bayes</h1>
<p>Both classifiers are variants of naive Bayes: they score every class by its prior
probability times the probability of each feature given the class, and assume the
features are independent of one another once the class is known.</p>
<h3>Data type</h3>
<p>Gaussian naive Bayes expects continuous features and models each one as a normal
distribution per class. Height, weight and temperature are typical examples.</p>
<p>Bernoulli naive Bayes expects binary features, present or absent. Continuous inputs are
turned into 0 or 1 by their sign before training, which is why it struggles on clustered
numeric data. Spam filtering and black and white pixels are typical examples.</p>
<h3>Best datasets</h3>
<p>Gaussian: numeric features that are roughly normally distributed; it is sensitive to
outliers. Bernoulli: binary features or features that convert naturally to binary, such as
word presence in text classification.</p>

<form action="/start" method="get">
<label>Select the classifier
<select name="classifier">
{{range .Classifiers}}{{if eq . $.Classifier}}<option selected>{{.}}</option>{{else}}<option>{{.}}</option>{{end}}
{{end}}</select>
</label>
<label>Select the dataset
<select name="dataset">
{{range .Datasets}}{{if eq . $.Dataset}}<option selected>{{.}}</option>{{else}}<option>{{.}}</option>{{end}}
{{end}}</select>
</label>
<button type="submit">Start</button>
</form>

{{with .Result}}
<h2>The Dataset</h2>
<table>
<tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
{{range .Samples}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
<p>{{.Train}} training samples, {{.Test}} test samples.</p>

<h2>Confusion Matrix</h2>
<table>
<tr><th>actual \ predicted</th>{{range .Classes}}<th>{{.}}</th>{{end}}</tr>
{{range $i, $row := .Matrix}}<tr><th>{{index $.Result.Classes $i}}</th>{{range $row}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>

<h2>Performance Metrics</h2>
<table>
<tr><th>class</th><th>precision</th><th>recall</th><th>f1-score</th><th>support</th></tr>
{{range .Metrics}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
<pre>{{.Summary}}</pre>

<h2>Visualization</h2>
<p>{{.Classifier}} decision regions over the test samples, coloured by predicted class
(lattice {{.Lattice}}).</p>
<img src="{{.Plot}}" alt="decision boundary">
{{end}}
</body>
</html>
`
