package main

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/nnart/resonance/fuzzy"
	"github.com/nnart/resonance/internal/dataset"
	progressbar "github.com/nnart/resonance/internal/progress_bar"
)

const (
	trainSamplesPerDigit = -1
	testSamplesPerDigit  = -1
)

func main() {
	trainData, err := dataset.GetData("./mnist/mnist_train.csv", trainSamplesPerDigit, false)
	if err != nil {
		log.Fatal(err)
	}

	testData, err := dataset.GetData("./mnist/mnist_test.csv", testSamplesPerDigit, false)
	if err != nil {
		log.Fatal(err)
	}

	params, err := fuzzy.NewParams(0.9, 0.01, 1.0)
	if err != nil {
		log.Fatal(err)
	}

	model, err := fuzzy.New(28*28, params)
	if err != nil {
		log.Fatal(err)
	}
	defer model.Close()

	run(trainData, testData, model)
}

func run(trainData, testData map[string][][]float64, model *fuzzy.Engine) {
	startTime := time.Now()

	category2Digit := make(map[int]int)

	totalSamples := 0
	for d := range 10 {
		totalSamples += len(trainData[strconv.Itoa(d)])
	}

	fmt.Println("Training progress:")
	bar := progressbar.New(totalSamples, 40)

	for d := range 10 {
		digitData := trainData[strconv.Itoa(d)]
		for i := range digitData {
			out, err := model.Learn(digitData[i])
			if err != nil {
				log.Fatal(err)
			}
			if out.Matched() {
				if _, ok := category2Digit[out.CategoryIndex]; !ok {
					category2Digit[out.CategoryIndex] = d
				}
			}
			bar.Increment()
		}
	}

	trainingTime := time.Since(startTime)
	fmt.Printf("\nTraining completed in %v\n", trainingTime)

	testStartTime := time.Now()

	samplesCount := 0
	for digit := range 10 {
		samplesCount += len(testData[strconv.Itoa(digit)])
	}

	fmt.Println("Testing progress:")
	testBar := progressbar.New(samplesCount, 40)

	exactResults := 0
	for digit := range 10 {
		samples := testData[strconv.Itoa(digit)]
		for _, sample := range samples {
			out, err := model.Predict(sample)
			if err != nil {
				log.Fatal(err)
			}
			if out.Matched() && digit == category2Digit[out.CategoryIndex] {
				exactResults++
			}
			testBar.Increment()
		}
	}

	testingTime := time.Since(testStartTime)
	fmt.Printf("\nTesting completed in %v\n", testingTime)
	precision := float64(exactResults) / float64(samplesCount)
	fmt.Printf("Precision: %.1f%%\n", precision*100)

	totalTime := time.Since(startTime)
	fmt.Printf("Total execution time: %v, learned categories: %d\n", totalTime, len(category2Digit))
}
